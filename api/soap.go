package api

import (
	"github.com/gin-gonic/gin"

	"github.com/veslo-ai/scribe/errors"
	"github.com/veslo-ai/scribe/server"
	"github.com/veslo-ai/scribe/validation"
)

// SoapRequest asks for a SOAP journal note section from a transcription.
type SoapRequest struct {
	Transcription string `json:"transcription" validate:"required"`
	PromptName    string `json:"prompt_name,omitempty"`
	PromptVersion int    `json:"prompt_version,omitempty" validate:"omitempty,gte=0"`
}

// SoapResponse carries the generated note.
type SoapResponse struct {
	Note string `json:"note"`
}

// SoapSubjective handles POST /api/v1/soap/subjective.
func (h *Handler) SoapSubjective(c *gin.Context) {
	var req SoapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.InvalidInput("body", "must be valid JSON").WithCause(err))
		return
	}
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	note, err := h.generate(c, req.PromptName, req.PromptVersion, req.Transcription)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, SoapResponse{Note: note})
}
