package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davseby/asyncapi-importer/internal/catalog"
	"github.com/davseby/asyncapi-importer/internal/importer"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

const (
	// _serviceName is returned by the alive endpoint.
	_serviceName = "Solace AsyncApi Importer REST Service"

	// _tokenAccepted is the last line of a successful token validation.
	_tokenAccepted = "SUCCESS"
)

// errTokenRejected is returned when the cloud API rejects the token.
var errTokenRejected = errors.New("token failed validation")

// aliveResponse is the body of the alive endpoint.
type aliveResponse struct {
	Message     string `json:"message"`
	CurrentTime string `json:"currentTime"`
}

// messagesResponse is the body of the captured endpoints.
type messagesResponse struct {
	Msgs []string `json:"msgs"`
}

// domainsResponse is the body of the application domains endpoint.
type domainsResponse struct {
	Msgs               []string         `json:"msgs"`
	ApplicationDomains []catalog.Domain `json:"applicationDomains"`
}

// handleAlive reports that the service is up.
func (s *Server) handleAlive(c *gin.Context) {
	s.log.DebugContext(c.Request.Context(), "alive endpoint invoked")

	c.JSON(http.StatusOK, aliveResponse{
		Message:     _serviceName,
		CurrentTime: time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// handleValidateToken validates the caller's token against the cloud
// API.
func (s *Server) handleValidateToken(c *gin.Context) {
	lines, status := s.captured(c, func(ctx context.Context) (int, error) {
		query := regionQuery{URLRegion: s.defaultRegion}

		var body tokenBody
		if err := bind(c, &query, &body); err != nil {
			return http.StatusBadRequest, err
		}

		base, err := query.baseURL()
		if err != nil {
			return http.StatusBadRequest, err
		}

		err = s.connect(base, body.token()).ValidateToken(ctx)

		var serr *catalog.StatusError

		switch {
		case err == nil:
			return http.StatusOK, nil
		case errors.As(err, &serr):
			s.log.WarnContext(ctx, fmt.Sprintf("token validation failed with status %d", serr.Code),
				slog.String("message", serr.Message),
			)

			return serr.Code, errTokenRejected
		default:
			s.log.ErrorContext(ctx, "token validation failed", slog.String("error", err.Error()))

			return http.StatusUnauthorized, err
		}
	})

	if status == http.StatusOK {
		lines = append(lines, _tokenAccepted)
	}

	c.JSON(status, messagesResponse{Msgs: lines})
}

// handleAppDomains lists the application domains visible to the caller's
// token.
func (s *Server) handleAppDomains(c *gin.Context) {
	domains := []catalog.Domain{}

	lines, status := s.captured(c, func(ctx context.Context) (int, error) {
		query := regionQuery{URLRegion: s.defaultRegion}

		var body tokenBody
		if err := bind(c, &query, &body); err != nil {
			return http.StatusBadRequest, err
		}

		base, err := query.baseURL()
		if err != nil {
			return http.StatusBadRequest, err
		}

		res, err := s.connect(base, body.token()).ApplicationDomains(ctx)
		if err != nil {
			s.log.ErrorContext(ctx, "listing application domains failed")

			var serr *catalog.StatusError
			if errors.As(err, &serr) {
				return serr.Code, err
			}

			return http.StatusInternalServerError, err
		}

		s.log.InfoContext(ctx, fmt.Sprintf("found %d application domain(s)", len(res)))

		domains = append(domains, res...)

		return http.StatusOK, nil
	})

	c.JSON(status, domainsResponse{
		Msgs:               lines,
		ApplicationDomains: domains,
	})
}

// handleImport imports the caller's AsyncAPI document.
func (s *Server) handleImport(c *gin.Context) {
	lines, status := s.captured(c, func(ctx context.Context) (int, error) {
		s.log.InfoContext(ctx, "ASYNCAPI SPEC IMPORT -- START")

		query := importQuery{
			regionQuery:        regionQuery{URLRegion: s.defaultRegion},
			NewVersionStrategy: string(importer.StrategyMajor),
		}

		var body importBody
		if err := bind(c, &query, &body); err != nil {
			s.log.ErrorContext(ctx, "ASYNCAPI SPEC IMPORT -- FAILED VALIDATION")
			return http.StatusBadRequest, err
		}

		doc, err := importer.Parse(body.document())
		if err != nil {
			s.log.ErrorContext(ctx, "ASYNCAPI SPEC IMPORT -- FAILED VALIDATION")
			return http.StatusBadRequest, err
		}

		opts, err := query.options()
		if err != nil {
			return http.StatusBadRequest, err
		}

		s.log.DebugContext(ctx, "import request passed validation")

		if opts.DisableCascadeUpdate {
			s.log.InfoContext(ctx, "cascade update feature is disabled for this operation")
		}

		if opts.EventsOnly {
			s.log.InfoContext(ctx, "application import is disabled, operation will import enums, schemas and events")
		}

		s.log.InfoContext(ctx, fmt.Sprintf("semver of new object versions will increment %s version of the previous object", opts.Strategy))

		base, err := query.baseURL()
		if err != nil {
			return http.StatusBadRequest, err
		}

		s.log.InfoContext(ctx, fmt.Sprintf("target cloud api url: %s", base))

		if _, err := s.importer.Import(ctx, s.connect(base, body.token()), doc, opts); err != nil {
			s.log.ErrorContext(ctx, "ASYNCAPI SPEC IMPORT FAILED WITH AN ERROR")
			return http.StatusInternalServerError, err
		}

		s.log.InfoContext(ctx, "ASYNCAPI SPEC IMPORT -- COMPLETE")

		return http.StatusOK, nil
	})

	c.JSON(status, messagesResponse{Msgs: lines})
}
