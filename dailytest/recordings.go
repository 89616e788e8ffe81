package dailytest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultAccessLinkTTL = 3600

type Recording struct {
	ID               uuid.UUID `json:"id"`
	RoomName         string    `json:"room_name"`
	StartTS          int64     `json:"start_ts"`
	Status           string    `json:"status"`
	MaxParticipants  int       `json:"max_participants"`
	Duration         *int      `json:"duration,omitempty"`
	S3Key            string    `json:"s3key"`
	MeetingSessionID uuid.UUID `json:"mtgSessionId"`
}

type recordingListQuery struct {
	listQuery
	RoomName string `form:"room_name"`
}

// AddRecording stores a recording. Zero IDs and status are filled in.
func (s *Server) AddRecording(r Recording) Recording {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.MeetingSessionID == uuid.Nil {
		r.MeetingSessionID = uuid.New()
	}
	if r.Status == "" {
		r.Status = "finished"
	}
	if r.StartTS == 0 {
		r.StartTS = s.clock.Now().Unix()
	}
	if r.S3Key == "" {
		r.S3Key = fmt.Sprintf("%s/%s/%d", s.domain, r.RoomName, r.StartTS)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recordings[r.ID]; !ok {
		s.recOrder = append(s.recOrder, r.ID)
	}
	s.recordings[r.ID] = &r
	return r
}

func (s *Server) lookupRecording(c *gin.Context) (*Recording, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abort(c, http.StatusBadRequest, kindInvalidRequest, "recording id must be a uuid")
		return nil, false
	}
	s.mu.Lock()
	rec, ok := s.recordings[id]
	var out Recording
	if ok {
		out = *rec
	}
	s.mu.Unlock()
	if !ok {
		abort(c, http.StatusNotFound, kindNotFound, fmt.Sprintf("recording %s was not found", id))
		return nil, false
	}
	return &out, true
}

func (s *Server) getRecording(c *gin.Context) {
	rec, ok := s.lookupRecording(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) deleteRecording(c *gin.Context) {
	rec, ok := s.lookupRecording(c)
	if !ok {
		return
	}

	s.mu.Lock()
	delete(s.recordings, rec.ID)
	for i, id := range s.recOrder {
		if id == rec.ID {
			s.recOrder = append(s.recOrder[:i], s.recOrder[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"id": rec.ID, "deleted": true})
}

func (s *Server) recordingAccessLink(c *gin.Context) {
	rec, ok := s.lookupRecording(c)
	if !ok {
		return
	}
	ttl, ok := queryInt(c, "valid_for_secs", defaultAccessLinkTTL)
	if !ok {
		return
	}
	expires := s.clock.Now().Unix() + int64(ttl)
	c.JSON(http.StatusOK, gin.H{
		"download_link": fmt.Sprintf("https://download.daily.co/%s?expires=%d", rec.S3Key, expires),
		"expires":       expires,
	})
}

func (s *Server) listRecordings(c *gin.Context) {
	var q recordingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abort(c, http.StatusBadRequest, kindInvalidRequest, err.Error())
		return
	}

	s.mu.Lock()
	all := make([]Recording, 0, len(s.recOrder))
	for _, id := range s.recOrder {
		rec := s.recordings[id]
		if q.RoomName != "" && rec.RoomName != q.RoomName {
			continue
		}
		all = append(all, *rec)
	}
	s.mu.Unlock()

	ids := make([]string, len(all))
	for i, r := range all {
		ids[i] = r.ID.String()
	}
	lo, hi := window(ids, q.listQuery)
	c.JSON(http.StatusOK, gin.H{"total_count": len(all), "data": all[lo:hi]})
}
