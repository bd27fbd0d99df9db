package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/cpi/internal/pkg/constants"
	"github.com/ougirez/cpi/internal/pkg/logger"
	"github.com/ougirez/cpi/internal/pkg/utils"
	"github.com/spf13/viper"
)

// AdminMiddleware пропускает запросы с jwt кукой, в которой лежит секрет из конфига.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
		if err != nil {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		secret := viper.GetString(constants.ViperSecretKey)
		if secret == "" || token.Secret != secret {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}

func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		requestID := ctx.Request().Header.Get(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Response().Header().Set(constants.HeaderRequestID, requestID)
		ctx.Set(constants.CtxKeyRequestID, requestID)

		req := ctx.Request()
		ctx.SetRequest(req.WithContext(logger.WithFields(req.Context(), "request_id", requestID)))

		return next(ctx)
	}
}
