package handlers

import "net/http"

// ModelsHandler lists the choices for the two model pickers in the UI:
// downloaded whisper variants and models the language-model server offers.
type ModelsHandler struct {
	whisper whisperLister
	llm     llmLister
}

func NewModelsHandler(whisper whisperLister, llm llmLister) *ModelsHandler {
	return &ModelsHandler{whisper: whisper, llm: llm}
}

type modelsResponse struct {
	Whisper []string `json:"whisper"`
	LLM     []string `json:"llm"`
}

// List returns both model lists in one call. A whisper scan failure is a
// server problem and fails the request; an unreachable language-model server
// degrades to an empty list so the page still renders.
func (h *ModelsHandler) List(w http.ResponseWriter, r *http.Request) {
	whisperModels, err := h.whisper.Models()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "could not scan whisper model directory")
		return
	}

	llmModels, err := h.llm.Models(r.Context())
	if err != nil {
		llmModels = []string{}
	}

	if whisperModels == nil {
		whisperModels = []string{}
	}
	if llmModels == nil {
		llmModels = []string{}
	}

	writeJSON(w, http.StatusOK, modelsResponse{Whisper: whisperModels, LLM: llmModels})
}
