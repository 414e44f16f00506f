package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/Slopex/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

var (
	validate = validator.New()
	trans    ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

// validateRequest. nil, or one error listing every failed field in english.
func validateRequest(request interface{}) error {
	if err := validate.Struct(request); err != nil {
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}

func (api *routingAPI) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func newErrorBody(status int, err error) errorBody {
	return errorBody{Code: http.StatusText(status), Message: err.Error()}
}

func (api *routingAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, err error) {
	if werr := api.writeJSON(w, status, envelope{"error": newErrorBody(status, err)}, nil); werr != nil {
		api.log.Error("write error response", zap.Error(werr), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *routingAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err)
}

func (api *routingAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, err)
}

func (api *routingAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.Error(err), zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusInternalServerError, errors.New(util.MessageInternalServerError))
}

// statusOf. http status for the util error code carried by err.
func statusOf(err error) int {
	switch util.ErrorCode(err) {
	case util.ErrBadParamInput:
		return http.StatusBadRequest
	case util.ErrNotFound:
		return http.StatusNotFound
	case util.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (api *routingAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	switch statusOf(err) {
	case http.StatusBadRequest:
		api.BadRequestResponse(w, r, err)
	case http.StatusNotFound:
		api.NotFoundResponse(w, r, err)
	case http.StatusConflict:
		api.errorResponse(w, r, http.StatusConflict, err)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}
