package server

import (
	"context"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinforge/forgedfate/internal/config"
	"github.com/vinforge/forgedfate/internal/server/middlewares"
	"github.com/vinforge/forgedfate/pkg/certificates"
)

const (
	ProductionServer string = config.ServerModeProd
	DevServer        string = config.ServerModeDev

	apiV1 string = "/api/v1"

	// PanelPath is where Kismet mounts the httpd folder of the plugin.
	PanelPath string = "/plugin/forgedfate"

	// streamPath stays open for the life of a panel tab and is left out of the access log.
	streamPath string = apiV1 + "/monitor/stream"
)

type Server struct {
	srv    *http.Server
	logger *zap.SugaredLogger
}

func NewServer(cfg *config.Configuration, registerHandlerFn func(router *gin.RouterGroup)) (*Server, error) {
	gin.SetMode(gin.DebugMode)
	if cfg.Server.ServerMode == ProductionServer {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(ginzap.RecoveryWithZap(zap.S().Desugar(), true))

	if cfg.Server.StaticsFolder != "" {
		mountPanel(engine, cfg.Server.StaticsFolder)
	}
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	router := engine.Group(apiV1, middlewares.Logger(streamPath))
	registerHandlerFn(router)

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Server.HTTPPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Server.ServerMode == ProductionServer {
		tlsConfig, err := selfSignedTLS(cfg.Server.Hosts)
		if err != nil {
			return nil, err
		}
		srv.TLSConfig = tlsConfig
	}

	return &Server{srv: srv, logger: zap.S().Named("server")}, nil
}

// mountPanel serves the plugin httpd folder (index.html, js/, css/) the way
// Kismet lays it out, and sends the bare root to the panel.
func mountPanel(engine *gin.Engine, folder string) {
	engine.Static(PanelPath, folder)
	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, PanelPath+"/")
	})
}

// Start serves HTTPS in prod mode and HTTP otherwise.
func (r *Server) Start(ctx context.Context) error {
	r.logger.Infow("starting http server", "addr", r.srv.Addr, "tls", r.srv.TLSConfig != nil)
	if r.srv.TLSConfig != nil {
		return r.srv.ListenAndServeTLS("", "")
	}
	return r.srv.ListenAndServe()
}

func (r *Server) Stop(ctx context.Context) {
	if err := r.srv.Shutdown(ctx); err != nil {
		r.logger.Errorw("server shutdown", "error", err)
	}
}

func selfSignedTLS(hosts []string) (*tls.Config, error) {
	cert, key, err := certificates.GenerateSelfSignedCertificate(time.Now().AddDate(1, 0, 0), hosts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate server's certificates: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{keyPair(cert, key)},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func keyPair(cert *x509.Certificate, key *rsa.PrivateKey) tls.Certificate {
	return tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  key,
		Leaf:        cert,
	}
}
