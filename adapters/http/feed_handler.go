package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
	feedUC "github.com/khoahotran/scholar-folio/internal/application/usecase/feed"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/logger"
	"go.uber.org/zap"
)

type feedEncoding struct {
	contentType string
	encode      func(*feeds.Feed) (string, error)
}

var feedEncodings = map[string]feedEncoding{
	"rss":  {"application/xml; charset=utf-8", (*feeds.Feed).ToRss},
	"atom": {"application/atom+xml; charset=utf-8", (*feeds.Feed).ToAtom},
	"json": {"application/feed+json; charset=utf-8", (*feeds.Feed).ToJSON},
}

// FeedHandler serves the blog feed as RSS, or as Atom or JSON Feed when
// ?format asks for it.
type FeedHandler struct {
	feed   *feedUC.RSSUseCase
	logger logger.Logger
}

func NewFeedHandler(uc *feedUC.RSSUseCase, log logger.Logger) *FeedHandler {
	return &FeedHandler{
		feed:   uc,
		logger: log,
	}
}

func (h *FeedHandler) Serve(c *gin.Context) {
	format := c.DefaultQuery("format", "rss")
	enc, ok := feedEncodings[format]
	if !ok {
		c.Error(apperror.NewValidation("format must be rss, atom or json", nil))
		return
	}

	feed, err := h.feed.Execute(c.Request.Context())
	if err != nil {
		c.Error(apperror.NewInternal("failed to build feed", err))
		return
	}
	body, err := enc.encode(feed)
	if err != nil {
		h.logger.Error("Failed to encode feed", err, zap.String("format", format))
		c.Error(apperror.NewInternal("failed to encode feed", err))
		return
	}
	c.Data(http.StatusOK, enc.contentType, []byte(body))
}
