// Package web provides the blindhunter web server: routing, sessions,
// templates, static assets and scheduled maintenance.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/blindhunter/blindhunter/config"
	"github.com/blindhunter/blindhunter/logger"
	"github.com/blindhunter/blindhunter/util/common"
	"github.com/blindhunter/blindhunter/web/controller"
	"github.com/blindhunter/blindhunter/web/job"
	"github.com/blindhunter/blindhunter/web/locale"
	"github.com/blindhunter/blindhunter/web/middleware"
	"github.com/blindhunter/blindhunter/web/service"
	"github.com/blindhunter/blindhunter/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

var startTime = time.Now()

const shutdownTimeout = 5 * time.Second

type wrapAssetsFS struct {
	embed.FS
}

func (f *wrapAssetsFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open("assets/" + name)
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFile{File: file}, nil
}

type wrapAssetsFile struct {
	fs.File
}

func (f *wrapAssetsFile) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFileInfo{FileInfo: info}, nil
}

// wrapAssetsFileInfo reports the process start as modification time, since
// embedded files carry none and browsers need one for caching.
type wrapAssetsFileInfo struct {
	fs.FileInfo
}

func (f *wrapAssetsFileInfo) ModTime() time.Time {
	return startTime
}

// Server is the blindhunter web server with its controllers and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index   *controller.IndexController
	company *controller.CompanyController
	review  *controller.ReviewController

	settingService service.SettingService

	cron *cron.Cron
}

func NewServer() *Server {
	return &Server{}
}

// getHtmlFiles walks the local `web/html` directory and returns a list of
// template file paths. Used only in debug mode so templates reload from disk.
func (s *Server) getHtmlFiles() ([]string, error) {
	files := make([]string, 0)
	dir, _ := os.Getwd()
	err := fs.WalkDir(os.DirFS(dir), "web/html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// getHtmlTemplate parses embedded HTML templates from the bundled `htmlFS`.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			newT, err := t.ParseFS(htmlFS, path+"/*.html")
			if err != nil {
				// ignore folders without matches
				return nil
			}
			t = newT
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// initRouter initializes Gin, registers middleware, templates, static assets,
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	secret, err := s.settingService.GetSecret()
	if err != nil {
		return nil, err
	}
	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	engine.Use(sessions.Sessions(session.CookieName, store))

	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.AuditMiddleware())

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware())

	funcMap := template.FuncMap{"i18n": locale.I18n}
	engine.SetFuncMap(funcMap)

	// Static files & templates
	if config.IsDebug() {
		files, err := s.getHtmlFiles()
		if err != nil {
			return nil, err
		}
		engine.LoadHTMLFiles(files...)
		engine.StaticFS("/assets", http.FS(os.DirFS("web/assets")))
	} else {
		tpl, err := s.getHtmlTemplate(funcMap)
		if err != nil {
			return nil, err
		}
		engine.SetHTMLTemplate(tpl)
		engine.StaticFS("/assets", http.FS(&wrapAssetsFS{FS: assetsFS}))
	}

	g := engine.Group("/")
	s.index = controller.NewIndexController(g)
	s.company = controller.NewCompanyController(g)
	s.review = controller.NewReviewController(g)

	engine.NoRoute(controller.NotFound)

	return engine, nil
}

// startTask schedules background jobs.
func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@hourly", job.NewCheckpointJob()); err != nil {
		logger.Warning("add checkpoint job failed:", err)
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc), cron.WithSeconds())
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and the cron scheduler.
func (s *Server) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// Shutdown also closes the listener.
		err1 = s.httpServer.Shutdown(ctx)
	} else if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// Addr returns the address the server listens on, nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
