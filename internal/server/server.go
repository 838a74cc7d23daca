// Package server exposes the converters over HTTP.
package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/eykd/adfconv/internal/adf"
	"github.com/eykd/adfconv/internal/builder"
	"github.com/eykd/adfconv/internal/config"
	"github.com/eykd/adfconv/internal/convert"
)

var contentTypes = map[convert.Format]string{
	convert.FormatADF:      fiber.MIMEApplicationJSONCharsetUTF8,
	convert.FormatHTML:     fiber.MIMETextHTMLCharsetUTF8,
	convert.FormatMarkdown: "text/markdown; charset=utf-8",
}

// Server is the HTTP front end of a Converter.
type Server struct {
	app   *fiber.App
	conv  *convert.Converter
	cache *cache.Cache
	log   *zap.Logger
}

// New builds the fiber app and its routes.
func New(cfg config.Server, conv *convert.Converter, log *zap.Logger) *Server {
	s := &Server{
		conv:  conv,
		cache: cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		log:   log,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "adfc",
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	v1 := s.app.Group("/v1")
	v1.Post("/convert/:from/:to", s.convert)
	v1.Post("/validate", s.validate)
	return s
}

// App returns the fiber app, for tests and embedding.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Info("listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) convert(c *fiber.Ctx) error {
	from, err := convert.ParseFormat(c.Params("from"))
	if err != nil {
		return err
	}
	to, err := convert.ParseFormat(c.Params("to"))
	if err != nil {
		return err
	}

	body := c.Body()
	key := cacheKey(from, to, body)
	c.Set(fiber.HeaderContentType, contentTypes[to])
	if out, ok := s.cache.Get(key); ok {
		c.Set("X-Cache", "HIT")
		return c.Send(out.([]byte))
	}

	out, err := s.conv.Convert(c.UserContext(), from, to, body)
	if err != nil {
		return err
	}
	s.cache.SetDefault(key, out)
	c.Set("X-Cache", "MISS")
	return c.Send(out)
}

func cacheKey(from, to convert.Format, body []byte) string {
	h := sha256.New()
	h.Write([]byte(from))
	h.Write([]byte{0})
	h.Write([]byte(to))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func (s *Server) validate(c *fiber.Ctx) error {
	doc, err := adf.Decode(c.Body())
	if err != nil {
		return err
	}
	diags := adf.Validate(doc)
	if diags == nil {
		diags = []adf.Diagnostic{}
	}
	status := fiber.StatusOK
	if adf.HasErrors(diags) {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{"diagnostics": diags})
}

// handleError maps conversion errors to status codes.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var (
		se  *builder.StructuralError
		fe  *fiber.Error
		syn *json.SyntaxError
		typ *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &se):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": se.Reason,
			"tag":   se.Tag,
			"stack": se.Stack,
		})
	case errors.Is(err, convert.ErrUnsupportedFormat), errors.As(err, &syn), errors.As(err, &typ):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	s.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
