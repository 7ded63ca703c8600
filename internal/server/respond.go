package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/parts-inventory/internal/common"
)

const maxBodyBytes = 8 << 20

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	httpStatus := common.HTTPStatus(err)
	msg := err.Error()
	code := common.CodeOf(err).String()
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
		code = appErr.Code
	} else if st, ok := status.FromError(err); ok {
		msg = st.Message()
	}
	if httpStatus >= http.StatusInternalServerError {
		s.logger.Error("http.error", "path", r.URL.Path, "status", httpStatus, "error", err)
		msg = "internal error"
	}
	writeJSON(w, httpStatus, errorResponse{Error: msg, Code: code, RequestID: common.RequestIDFromContext(r.Context())})
}

// decodeBody reads the request body, validates it against schema and decodes
// it into dst.
func decodeBody(r *http.Request, schema *jsonschema.Schema, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return common.NewAppError("READ_BODY", "cannot read request body", common.ErrInvalidInput)
	}
	if err := common.ValidateJSON(schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return common.NewAppError("INVALID_JSON", "malformed JSON body", common.ErrInvalidInput)
	}
	return nil
}
