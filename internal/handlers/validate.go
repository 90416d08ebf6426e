package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mandag122/WeeVora/internal/planner"
)

var validatorsOnce sync.Once

// registerValidators adds the custom binding tags to gin's validator
func registerValidators(log *zap.Logger) {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Warn("binding engine is not go-playground/validator, isodate tag unavailable")
			return
		}
		if err := v.RegisterValidation("isodate", isoDate); err != nil {
			log.Error("register isodate validation", zap.Error(err))
		}
	})
}

// isoDate accepts "YYYY-MM-DD", optionally followed by a time part
func isoDate(fl validator.FieldLevel) bool {
	_, ok := planner.ParseDay(fl.Field().String())
	return ok
}
