package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clientive/clientive/internal/domain"
	"github.com/clientive/clientive/internal/infra/ics"
	"github.com/clientive/clientive/internal/usecase"
)

const calendarContentType = "text/calendar; charset=utf-8"

// handleCalendar serves the live task feed. Calendar clients treat non-200
// responses as a broken subscription, so every failure is reported inside
// a 200 calendar instead.
func (s *Server) handleCalendar(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	owner, err := authenticate(s.opts.Tokens, feedToken(c))
	if err != nil {
		s.feedError(c, "Unauthorized: open the calendar link from your account to refresh its token.")
		return
	}

	st := s.opts.Stores.ForOwner(owner)
	uc := usecase.NewBuildCalendar(st.Tasks, st.Clients, s.opts.Clock, s.opts.Location, s.opts.Logger)
	out, err := uc.Execute(c.Request.Context(), usecase.BuildCalendarInput{})
	if err != nil {
		s.opts.Logger.Error("calendar", "build feed: "+err.Error())
		s.feedError(c, domain.FriendlyError(err))
		return
	}

	s.opts.Metrics.FeedServed(out.Events)
	c.Data(http.StatusOK, calendarContentType, []byte(out.Content))
}

func (s *Server) feedError(c *gin.Context, msg string) {
	s.opts.Metrics.FeedFailed()
	c.Data(http.StatusOK, calendarContentType, []byte(ics.ErrorCalendar(msg, s.opts.Clock.Now())))
}
