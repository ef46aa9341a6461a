package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/pratik-mahalle/numera/internal/api/middleware"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/utils"
	"github.com/pratik-mahalle/numera/internal/pkg/validator"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

// normalizer is implemented by requests that clean their fields before validation
type normalizer interface {
	Normalize()
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, val *validator.Validator, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		msg := "Invalid request body"
		if stderrors.Is(err, io.EOF) {
			msg = "Request body is required"
		}
		utils.WriteError(w, errors.BadRequest(msg))
		return false
	}

	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}

	if validationErrs := val.Validate(dst); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return false
	}
	return true
}

// requireUserID returns the resolved caller or writes a 401
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Unauthorized"))
		return "", false
	}
	return userID, true
}

// writeServiceError maps a service error onto the response. Server-side
// failures are logged with the originating error.
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error, fallback string) {
	appErr := errors.As(err, fallback)
	if appErr.StatusCode >= http.StatusInternalServerError || appErr.StatusCode == 0 {
		log.ErrorWithErr(err, fallback)
		// Store and driver messages stay in the logs
		appErr = errors.Internal(fallback, err)
	}
	utils.WriteError(w, appErr)
}
