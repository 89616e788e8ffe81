package dailytest

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxPageLimit = 100

// Room is the stored room, serialized the way the API reports it.
type Room struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	APICreated bool           `json:"api_created"`
	Privacy    string         `json:"privacy"`
	URL        string         `json:"url"`
	CreatedAt  string         `json:"created_at"`
	Config     map[string]any `json:"config"`
}

var roomPropertyNames = map[string]bool{
	"nbf": true, "exp": true, "max_participants": true,
	"enable_people_ui": true, "enable_pip_ui": true, "enable_prejoin_ui": true,
	"enable_network_ui": true, "enable_knocking": true, "enable_screenshare": true,
	"enable_video_processing_ui": true, "enable_chat": true,
	"start_video_off": true, "start_audio_off": true, "owner_only_broadcast": true,
	"enable_recording": true, "eject_at_room_exp": true, "eject_after_elapsed": true,
	"enable_hidden_participants": true, "enable_mesh_sfu": true,
	"experimental_optimize_large_calls": true, "lang": true, "meeting_join_hook": true,
	"signaling_imp": true, "geo": true, "rtmp_geo": true, "enable_terse_logging": true,
}

type createRoomRequest struct {
	Name       string         `json:"name" binding:"omitempty,roomname"`
	Privacy    string         `json:"privacy" binding:"omitempty,privacy"`
	Properties map[string]any `json:"properties"`
}

type updateRoomRequest struct {
	Privacy    string         `json:"privacy" binding:"omitempty,privacy"`
	Properties map[string]any `json:"properties"`
}

type listQuery struct {
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
	StartingAfter string `form:"starting_after"`
	EndingBefore  string `form:"ending_before"`
}

// AddRoom stores a room directly, bypassing the API. Missing ID, URL and
// CreatedAt are filled in.
func (s *Server) AddRoom(r Room) Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putRoom(r)
}

// RoomNames lists stored rooms in creation order.
func (s *Server) RoomNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.roomOrder))
	copy(out, s.roomOrder)
	return out
}

func (s *Server) putRoom(r Room) Room {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Privacy == "" {
		r.Privacy = "public"
	}
	if r.URL == "" {
		r.URL = fmt.Sprintf("https://%s.daily.co/%s", s.domain, r.Name)
	}
	if r.CreatedAt == "" {
		r.CreatedAt = s.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	}
	if r.Config == nil {
		r.Config = map[string]any{}
	}
	if _, ok := s.rooms[r.Name]; !ok {
		s.roomOrder = append(s.roomOrder, r.Name)
	}
	s.rooms[r.Name] = &r
	return r
}

func (s *Server) createRoom(c *gin.Context) {
	var req createRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	if bad := unknownKeys(req.Properties, roomPropertyNames); bad != "" {
		abort(c, http.StatusBadRequest, kindInvalidRequest, "unknown room property "+bad)
		return
	}

	name := req.Name
	if name == "" {
		name = strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
	}

	s.mu.Lock()
	if _, exists := s.rooms[name]; exists {
		s.mu.Unlock()
		abort(c, http.StatusBadRequest, kindInvalidRequest, fmt.Sprintf("a room named %s already exists", name))
		return
	}
	room := s.putRoom(Room{
		Name:       name,
		APICreated: true,
		Privacy:    req.Privacy,
		Config:     req.Properties,
	})
	s.mu.Unlock()

	c.JSON(http.StatusOK, room)
}

func (s *Server) getRoom(c *gin.Context) {
	s.mu.Lock()
	room, ok := s.rooms[c.Param("name")]
	var out Room
	if ok {
		out = *room
	}
	s.mu.Unlock()

	if !ok {
		abort(c, http.StatusNotFound, kindNotFound, fmt.Sprintf("room %s was not found", c.Param("name")))
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) updateRoom(c *gin.Context) {
	var req updateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	if bad := unknownKeys(req.Properties, roomPropertyNames); bad != "" {
		abort(c, http.StatusBadRequest, kindInvalidRequest, "unknown room property "+bad)
		return
	}

	s.mu.Lock()
	room, ok := s.rooms[c.Param("name")]
	if !ok {
		s.mu.Unlock()
		abort(c, http.StatusNotFound, kindNotFound, fmt.Sprintf("room %s was not found", c.Param("name")))
		return
	}
	if req.Privacy != "" {
		room.Privacy = req.Privacy
	}
	for k, v := range req.Properties {
		room.Config[k] = v
	}
	out := *room
	s.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteRoom(c *gin.Context) {
	name := c.Param("name")

	s.mu.Lock()
	_, ok := s.rooms[name]
	if ok {
		delete(s.rooms, name)
		for i, n := range s.roomOrder {
			if n == name {
				s.roomOrder = append(s.roomOrder[:i], s.roomOrder[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		abort(c, http.StatusNotFound, kindNotFound, fmt.Sprintf("room %s was not found", name))
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "deleted": true})
}

func (s *Server) listRooms(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abort(c, http.StatusBadRequest, kindInvalidRequest, err.Error())
		return
	}

	s.mu.Lock()
	all := make([]Room, 0, len(s.roomOrder))
	for _, name := range s.roomOrder {
		all = append(all, *s.rooms[name])
	}
	s.mu.Unlock()

	ids := make([]string, len(all))
	for i, r := range all {
		ids[i] = r.ID
	}
	lo, hi := window(ids, q)
	c.JSON(http.StatusOK, gin.H{"total_count": len(all), "data": all[lo:hi]})
}

// window applies cursor and limit to an ordered id list.
func window(ids []string, q listQuery) (int, int) {
	limit := q.Limit
	if limit == 0 {
		limit = maxPageLimit
	}
	lo, hi := 0, len(ids)
	if q.StartingAfter != "" {
		lo = indexOf(ids, q.StartingAfter) + 1
	}
	if q.EndingBefore != "" {
		if i := indexOf(ids, q.EndingBefore); i >= 0 {
			hi = i
		}
		if hi-lo > limit {
			lo = hi - limit
		}
	}
	if lo > hi {
		lo = hi
	}
	if hi-lo > limit {
		hi = lo + limit
	}
	return lo, hi
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func unknownKeys(props map[string]any, allowed map[string]bool) string {
	var bad []string
	for k := range props {
		if !allowed[k] {
			bad = append(bad, k)
		}
	}
	sort.Strings(bad)
	return strings.Join(bad, ", ")
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		abort(c, http.StatusBadRequest, kindInvalidRequest, key+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}
