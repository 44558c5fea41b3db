package services

import "github.com/go-playground/validator/v10"

// validate checks the struct tags on service inputs
var validate = validator.New()
