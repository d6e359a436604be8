package handler

import (
	"net/http"

	"github.com/hrmslite/hrms-backend/pkg/httputil"
	"github.com/hrmslite/hrms-backend/pkg/logger"
)

// fail writes err and logs it when it is a server-side failure
func fail(log *logger.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if status := httputil.StatusOf(err); status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", httputil.GetRequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	httputil.Error(w, err)
}
