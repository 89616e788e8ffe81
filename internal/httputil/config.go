// Package httputil runs the HTTP listeners of the commands.
package httputil

import (
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type Config struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	TLS               TLSConfig     `mapstructure:"tls"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("addr"), ":8080")
	v.SetDefault(p("read_header_timeout"), "5s")
	v.SetDefault(p("tls.enabled"), false)
	v.SetDefault(p("tls.cert_file"), "")
	v.SetDefault(p("tls.key_file"), "")
}

// Server binds eagerly so callers can learn the real address when Addr ends
// in ":0".
type Server struct {
	*http.Server
	cfg      *Config
	listener net.Listener
}

func NewServer(cfg *Config, handler http.Handler) *Server {
	return &Server{
		Server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		cfg: cfg,
	}
}

// Bind opens the listener. Listen calls it when needed.
func (s *Server) Bind() error {
	if s.listener != nil {
		return nil
	}
	if s.cfg.TLS.Enabled && (s.cfg.TLS.CertFile == "" || s.cfg.TLS.KeyFile == "") {
		return errors.New("TLS is enabled but cert_file or key_file is not set")
	}
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.cfg.Addr)
	}
	s.listener = l
	return nil
}

// BoundAddr is empty before Bind.
func (s *Server) BoundAddr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Listen serves until Shutdown. A clean shutdown returns nil.
func (s *Server) Listen() error {
	if err := s.Bind(); err != nil {
		return err
	}

	var err error
	if s.cfg.TLS.Enabled {
		err = s.ServeTLS(s.listener, s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
	} else {
		err = s.Serve(s.listener)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
