package handler

import (
	"errors"
	"net/http"

	"github.com/REDDITARUN/helix/internal/api/response"
	"github.com/REDDITARUN/helix/internal/domain"
	"github.com/rs/zerolog/log"
)

// writeError maps the domain error taxonomy onto HTTP statuses with a
// stable category so callers can distinguish retryable model failures
// (malformed_response, upstream_error) from their own mistakes.
func writeError(w http.ResponseWriter, err error) {
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var malformed *domain.MalformedResponseError
	var upstream *domain.UpstreamError

	switch {
	case errors.As(err, &notFound):
		response.NotFound(w, response.ErrorBody{Category: "not_found", Message: notFound.Error()})
	case errors.As(err, &validation):
		response.BadRequest(w, response.ErrorBody{Category: "validation_error", Message: validation.Error()})
	case errors.As(err, &malformed):
		response.Error(w, http.StatusBadGateway, response.ErrorBody{Category: "malformed_response", Message: malformed.Error()})
	case errors.As(err, &upstream):
		log.Error().Err(err).Str("service", upstream.Service).Msg("upstream service failure")
		response.Error(w, http.StatusBadGateway, response.ErrorBody{Category: "upstream_error", Message: upstream.Error()})
	default:
		log.Error().Err(err).Msg("unhandled error")
		response.InternalError(w, response.ErrorBody{Category: "internal", Message: "internal server error"})
	}
}
