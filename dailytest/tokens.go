package dailytest

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/imtaco/dailyco-go/internal/validation"
)

// Token properties and the compact claim names they travel under inside the
// JWT. Names missing from the compact set keep their long form.
var tokenClaimNames = map[string]string{
	"room_name":                "r",
	"eject_at_token_exp":       "ejt",
	"eject_after_elapsed":      "eje",
	"nbf":                      "nbf",
	"exp":                      "exp",
	"is_owner":                 "o",
	"user_name":                "u",
	"user_id":                  "ud",
	"enable_screenshare":       "ss",
	"start_video_off":          "vo",
	"start_audio_off":          "ao",
	"enable_recording":         "er",
	"enable_prejoin_ui":        "enable_prejoin_ui",
	"enable_terse_logging":     "enable_terse_logging",
	"start_cloud_recording":    "sr",
	"close_tab_on_exit":        "ctoe",
	"redirect_on_meeting_exit": "rome",
	"lang":                     "uil",
}

var tokenPropertyNames = func() map[string]bool {
	m := make(map[string]bool, len(tokenClaimNames))
	for long := range tokenClaimNames {
		m[long] = true
	}
	return m
}()

var longClaimNames = func() map[string]string {
	m := make(map[string]string, len(tokenClaimNames))
	for long, short := range tokenClaimNames {
		m[short] = long
	}
	return m
}()

type createTokenRequest struct {
	Properties map[string]any `json:"properties" binding:"required"`
}

// IssueToken signs properties the way the service does: HS256 over the
// compact claim names plus "d", the domain id.
func (s *Server) IssueToken(properties map[string]any) (string, error) {
	claims := jwt.MapClaims{"d": s.domainID}
	for long, v := range properties {
		short, ok := tokenClaimNames[long]
		if !ok {
			short = long
		}
		claims[short] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) createToken(c *gin.Context) {
	var req createTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if bad := unknownKeys(req.Properties, tokenPropertyNames); bad != "" {
		abort(c, http.StatusBadRequest, kindInvalidRequest, "unknown meeting token property "+bad)
		return
	}
	if info := checkTokenProperties(req.Properties); info != "" {
		abort(c, http.StatusBadRequest, kindInvalidRequest, info)
		return
	}

	token, err := s.IssueToken(req.Properties)
	if err != nil {
		abort(c, http.StatusInternalServerError, "server-error", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) getToken(c *gin.Context) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(c.Param("token"), claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithJSONNumber(),
	)
	if err != nil {
		abort(c, http.StatusBadRequest, kindInvalidRequest, "invalid meeting token: "+err.Error())
		return
	}
	if d, _ := claims["d"].(string); d != s.domainID {
		abort(c, http.StatusBadRequest, kindInvalidRequest, "meeting token belongs to another domain")
		return
	}

	out := make(map[string]any, len(claims))
	for short, v := range claims {
		if long, ok := longClaimNames[short]; ok {
			out[long] = v
		}
	}
	c.JSON(http.StatusOK, out)
}

// checkTokenProperties mirrors the server-side checks the client also runs.
func checkTokenProperties(props map[string]any) string {
	if v, ok := number(props["eject_after_elapsed"]); ok && v < 0 {
		return "eject_after_elapsed must be non-negative"
	}
	nbf, hasNbf := number(props["nbf"])
	exp, hasExp := number(props["exp"])
	if hasNbf && hasExp && nbf >= exp {
		return "nbf must be before exp"
	}
	if v, ok := props["room_name"].(string); ok {
		type roomName struct {
			Name string `validate:"roomname"`
		}
		if err := validation.Default().Struct(roomName{Name: v}); err != nil {
			return "invalid room_name"
		}
	}
	return ""
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// bindJSON decodes the body, answering 400 itself on failure.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		abort(c, http.StatusBadRequest, kindInvalidRequest, validation.Summary(verrs))
		return false
	}
	abort(c, http.StatusBadRequest, kindJSONParsing, err.Error())
	return false
}
