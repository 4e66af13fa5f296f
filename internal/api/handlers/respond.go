package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/malavshah9/audiobrief/internal/pipeline"
	"github.com/malavshah9/audiobrief/internal/staging"
)

// errorBody is the envelope for failed requests. Kind is stable and machine
// readable so the UI can key messages off it; Message is already phrased for
// people.
type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": errorBody{Kind: kind, Message: message},
	})
}

// writeRunError maps a classified pipeline failure to a status code and a
// user-facing message. Each failure reads differently on purpose: "the model
// server is down" and "the transcription engine crashed" call for different
// fixes. When a transcript survived the failure it rides along so the UI can
// still show it.
func writeRunError(w http.ResponseWriter, perr *pipeline.Error) {
	status := http.StatusInternalServerError
	kind := string(perr.Failure)
	var message string

	switch perr.Failure {
	case pipeline.FailureStaging:
		switch {
		case errors.Is(perr, staging.ErrEmptyUpload):
			status, kind = http.StatusBadRequest, "empty_upload"
			message = "the uploaded file is empty"
		case errors.Is(perr, staging.ErrUnsupportedFormat):
			status, kind = http.StatusBadRequest, "unsupported_format"
			message = "unsupported audio format: upload a .wav or .mp3 file"
		default:
			status = http.StatusUnprocessableEntity
			message = "could not convert the upload into audio the transcription engine accepts"
		}
	case pipeline.FailureUnknownCategory:
		status = http.StatusBadRequest
		message = perr.Err.Error()
	case pipeline.FailureTranscriptionTimeout:
		status = http.StatusGatewayTimeout
		message = "transcription timed out; try a shorter recording or a smaller whisper model"
	case pipeline.FailureTranscriptionFailed:
		status = http.StatusInternalServerError
		message = "the transcription engine failed on this file"
	case pipeline.FailureTranscriptionEmpty:
		status = http.StatusUnprocessableEntity
		message = "the recording contained no transcribable speech"
	case pipeline.FailureSummarizerUnreachable:
		status = http.StatusBadGateway
		message = "the language-model server is unreachable; check that it is running"
	case pipeline.FailureSummarizerHTTP:
		status = http.StatusBadGateway
		message = fmt.Sprintf("the language-model server rejected the request (status %d)", perr.UpstreamStatus)
	case pipeline.FailureSummarizerTimeout:
		status = http.StatusGatewayTimeout
		message = "summarization timed out; the model may be overloaded"
	default:
		message = "internal error"
	}

	body := map[string]interface{}{
		"error": errorBody{Kind: kind, Message: message},
	}
	if perr.Transcript != "" {
		body["transcript"] = perr.Transcript
	}
	writeJSON(w, status, body)
}
