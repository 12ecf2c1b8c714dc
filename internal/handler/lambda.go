package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/rahulansharma682/fitlog-cloud-computing/internal/workout"
)

// invokeTimeout bounds a single invocation below the function's own
// 30s platform timeout, so a stuck store call fails the request
// instead of hanging it.
const invokeTimeout = 25 * time.Second

var corsHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
	"Access-Control-Allow-Methods": "OPTIONS,POST,GET,DELETE",
}

type createResponse struct {
	workout.Record
	Warning string `json:"warning,omitempty"`
}

// Lambda returns the Function URL entry point for the handler.
func Lambda(h *Handler) func(ctx context.Context, req events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	return func(ctx context.Context, req events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		ctx, cancel := context.WithTimeout(ctx, invokeTimeout)
		defer cancel()
		return h.serveLambda(ctx, req), nil
	}
}

func (h *Handler) serveLambda(ctx context.Context, req events.LambdaFunctionURLRequest) events.LambdaFunctionURLResponse {
	method := req.RequestContext.HTTP.Method
	path := strings.TrimSuffix(req.RawPath, "/")
	if path == "" {
		path = "/"
	}

	if method == http.MethodOptions {
		return lambdaJSON(http.StatusOK, map[string]string{"message": "CORS preflight"})
	}
	if method == http.MethodGet && path == "/health" {
		return lambdaJSON(http.StatusOK, map[string]string{"status": "healthy", "message": "handler is running"})
	}

	id, hasID := strings.CutPrefix(path, "/workouts/")
	hasID = hasID && id != "" && !strings.Contains(id, "/")
	switch {
	case method == http.MethodPost && path == "/workouts":
		body := []byte(req.Body)
		if req.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(req.Body)
			if err != nil {
				return lambdaError(http.StatusBadRequest, "invalid request body")
			}
			body = decoded
		}
		rec, warning, err := h.Create(ctx, body)
		if err != nil {
			return h.lambdaOpError(err)
		}
		return lambdaJSON(http.StatusCreated, createResponse{Record: rec, Warning: warning})

	case method == http.MethodGet && path == "/workouts":
		recs, err := h.List(ctx)
		if err != nil {
			return h.lambdaOpError(err)
		}
		return lambdaJSON(http.StatusOK, recs)

	case method == http.MethodGet && hasID:
		rec, err := h.Get(ctx, id)
		if err != nil {
			return h.lambdaOpError(err)
		}
		return lambdaJSON(http.StatusOK, rec)

	case method == http.MethodDelete && hasID:
		if err := h.Delete(ctx, id); err != nil {
			return h.lambdaOpError(err)
		}
		return events.LambdaFunctionURLResponse{StatusCode: http.StatusNoContent, Headers: corsHeaders}

	default:
		return lambdaError(http.StatusNotFound, "not supported")
	}
}

func (h *Handler) lambdaOpError(err error) events.LambdaFunctionURLResponse {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Printf("request error: %v", err)
	}
	return lambdaError(status, errMessage(err))
}

func lambdaError(status int, msg string) events.LambdaFunctionURLResponse {
	return lambdaJSON(status, map[string]string{"error": msg})
}

func lambdaJSON(status int, v any) events.LambdaFunctionURLResponse {
	body, err := json.Marshal(v)
	if err != nil {
		return events.LambdaFunctionURLResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    corsHeaders,
			Body:       `{"error":"failed to encode response"}`,
		}
	}
	return events.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    corsHeaders,
		Body:       string(body),
	}
}
