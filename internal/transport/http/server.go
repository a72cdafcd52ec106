package journalhttp

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cosmosider/O-bok-wan/internal/journal"
	"github.com/cosmosider/O-bok-wan/internal/logger"
	"github.com/cosmosider/O-bok-wan/internal/market"
	webassets "github.com/cosmosider/O-bok-wan/internal/transport/web"
)

// RecordStore 是处理器依赖的日志存储能力。
type RecordStore interface {
	LoadAll() []journal.TradeRecord
	Append(journal.TradeRecord) error
}

// ContextProvider 提供按日期的市场背景查询。
type ContextProvider interface {
	Get(ctx context.Context, day time.Time) market.Context
}

// Server 暴露记录表单、历史表格与统计图表三块页面及配套 API。
type Server struct {
	addr   string
	router *gin.Engine
}

type ServerConfig struct {
	Addr     string
	Store    RecordStore
	Contexts ContextProvider
}

var pageTemplateFuncs = template.FuncMap{
	"formatEntryTime": func(dt journal.DateTime) string {
		if dt.IsZero() {
			return "-"
		}
		return dt.Format("2006-01-02 15:04")
	},
	"resultClass": func(r journal.Result) string {
		if r == journal.ResultWin {
			return "win"
		}
		return "lose"
	},
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("journal http server requires a record store")
	}
	if cfg.Contexts == nil {
		return nil, errors.New("journal http server requires a context provider")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8686"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	tmpl, err := template.New("journal").Funcs(pageTemplateFuncs).ParseFS(webassets.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates failed: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handler{store: cfg.Store, contexts: cfg.Contexts}
	h.register(router)

	return &Server{addr: cfg.Addr, router: router}, nil
}

// Addr 返回监听地址。
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Router 暴露底层路由，便于测试直接驱动。
func (s *Server) Router() http.Handler {
	if s == nil {
		return nil
	}
	return s.router
}

// Start 启动 HTTP 服务，直到 ctx 取消或出现错误。
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		client := c.ClientIP()
		c.Next()
		dur := time.Since(start)
		status := c.Writer.Status()
		logger.Debugf("HTTP %s %s status=%d ip=%s dur=%s", method, path, status, client, dur)
	}
}
