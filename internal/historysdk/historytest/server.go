// Package historytest runs an in-memory configuration history service for tests.
//
// The routes mirror the real backend. Every request is recorded with its raw
// (still escaped) path so tests can assert on what went over the wire.
package historytest

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ha-config-history/cfgctl/internal/historysdk"
	slogGin "github.com/samber/slog-gin"
)

const (
	ServerVersion = "1.4.2"
	ServerCommit  = "f00dcafe"
)

// Request is a recorded incoming request.
type Request struct {
	Method  string
	Path    string // escaped path as sent by the client
	Route   string // matched gin route, "" when nothing matched
	Header  http.Header
	Body    []byte
	Handled time.Time
}

// Backup is a stored backup file.
type Backup struct {
	Date    time.Time
	Content string
}

type configKey struct {
	group string
	id    string
}

type cannedResponse struct {
	status      int
	contentType string
	body        string
}

// Server is a fake backend. The zero value is not usable, call New.
type Server struct {
	URL string

	srv     *httptest.Server
	started time.Time

	mu        sync.Mutex
	configs   map[configKey]*historysdk.ConfigMetadata
	backups   map[configKey]map[string]Backup
	settings  historysdk.AppSettings
	requests  []Request
	overrides map[string]cannedResponse
	backupRun int
}

// New starts a server. It is closed automatically when the test ends.
func New(t interface{ Cleanup(func()) }) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		started:   time.Now(),
		configs:   make(map[configKey]*historysdk.ConfigMetadata),
		backups:   make(map[configKey]map[string]Backup),
		overrides: make(map[string]cannedResponse),
	}

	s.srv = httptest.NewServer(s.router())
	s.URL = s.srv.URL
	t.Cleanup(s.srv.Close)

	return s
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	// route on the escaped path so encoded slashes stay inside a single segment
	r.UseRawPath = true
	r.UnescapePathValues = true

	r.Use(s.recordRequest)
	r.Use(requestID)
	r.Use(slogGin.NewWithConfig(slog.Default().WithGroup("historytest"), slogGin.Config{
		DefaultLevel:     slog.LevelDebug,
		ClientErrorLevel: slog.LevelDebug,
		ServerErrorLevel: slog.LevelWarn,
	}))
	r.Use(gzip.Gzip(gzip.BestSpeed))
	r.Use(gin.Recovery())
	r.Use(s.cannedResponses)

	r.GET("/configs", s.listConfigs)
	r.GET("/configs/:group/:id/backups", s.listBackups)
	r.GET("/configs/:group/:id/backups/:filename", s.getBackup)
	r.GET("/configs/:group/:id/compare/:left/diff/:right", s.diffBackups)
	r.POST("/configs/:group/:id/backups/:filename/restore", s.restoreBackup)
	r.DELETE("/configs/:group/:id/backups/:filename", s.deleteBackup)
	r.DELETE("/configs/:group/:id", s.deleteAllBackups)
	r.POST("/backup", s.triggerBackup)
	r.GET("/settings", s.getSettings)
	r.PUT("/settings", s.updateSettings)
	r.GET("/health", s.health)
	r.GET("/version", s.version)

	return r
}

// Close shuts the server down. Safe to call more than once.
func (s *Server) Close() {
	s.srv.Close()
}

// AddBackup stores a backup and creates the config entry on first use.
func (s *Server) AddBackup(group, id, friendlyName, filename string, b Backup) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := configKey{group, id}
	if s.backups[key] == nil {
		s.backups[key] = make(map[string]Backup)
	}
	s.backups[key][filename] = b

	meta, ok := s.configs[key]
	if !ok {
		meta = &historysdk.ConfigMetadata{
			Group:        group,
			ID:           id,
			FriendlyName: friendlyName,
			BackupType:   historysdk.BackupTypeSingle,
		}
		s.configs[key] = meta
	}
	s.refreshLocked(key)
}

// SetSettings replaces the stored settings.
func (s *Server) SetSettings(settings historysdk.AppSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// Settings returns the stored settings.
func (s *Server) Settings() historysdk.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// HasBackup reports whether the backup file is still stored.
func (s *Server) HasBackup(group, id, filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.backups[configKey{group, id}][filename]
	return ok
}

// BackupRuns counts POST /backup calls.
func (s *Server) BackupRuns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backupRun
}

// FailWith makes every request on route answer with status and an error body.
// route is the gin pattern, e.g. "/configs/:group/:id/backups".
func (s *Server) FailWith(method, route string, status int) {
	s.RespondWith(method, route, status, gin.MIMEJSON, fmt.Sprintf(`{"error":%q}`, http.StatusText(status)))
}

// RespondWith makes every request on route answer with the given raw response.
func (s *Server) RespondWith(method, route string, status int, contentType, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+route] = cannedResponse{status: status, contentType: contentType, body: body}
}

// Requests returns a copy of every recorded request.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request, or an empty Request.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) refreshLocked(key configKey) {
	meta := s.configs[key]
	files := s.backups[key]
	if len(files) == 0 {
		delete(s.configs, key)
		delete(s.backups, key)
		return
	}

	meta.BackupCount = len(files)
	meta.BackupsSize = 0
	meta.LastBackup = time.Time{}
	for _, b := range files {
		meta.BackupsSize += int64(len(b.Content))
		if b.Date.After(meta.LastBackup) {
			meta.LastBackup = b.Date
		}
	}
}

func (s *Server) recordRequest(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	c.Next()

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:  c.Request.Method,
		Path:    c.Request.URL.EscapedPath(),
		Route:   c.FullPath(),
		Header:  c.Request.Header.Clone(),
		Body:    body,
		Handled: time.Now(),
	})
	s.mu.Unlock()
}

func requestID(c *gin.Context) {
	id := uuid.New().String()
	c.Set("requestID", id)
	c.Header("X-Request-ID", id)
	c.Next()
}

func (s *Server) cannedResponses(c *gin.Context) {
	s.mu.Lock()
	canned, ok := s.overrides[c.Request.Method+" "+c.FullPath()]
	s.mu.Unlock()
	if !ok {
		c.Next()
		return
	}
	c.Data(canned.status, canned.contentType, []byte(canned.body))
	c.Abort()
}

func (s *Server) lookup(c *gin.Context) (configKey, map[string]Backup, bool) {
	key := configKey{c.Param("group"), c.Param("id")}
	files, ok := s.backups[key]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "config not found: " + key.id})
		return key, nil, false
	}
	return key, files, true
}

func (s *Server) listConfigs(c *gin.Context) {
	s.mu.Lock()
	metadata := make([]historysdk.ConfigMetadata, 0, len(s.configs))
	for _, m := range s.configs {
		metadata = append(metadata, *m)
	}
	s.mu.Unlock()

	sort.Slice(metadata, func(i, j int) bool {
		return metadata[i].FriendlyName < metadata[j].FriendlyName
	})

	c.IndentedJSON(http.StatusOK, metadata)
}

func (s *Server) listBackups(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, files, ok := s.lookup(c)
	if !ok {
		return
	}

	backups := make([]historysdk.BackupInfo, 0, len(files))
	for name, b := range files {
		backups = append(backups, historysdk.BackupInfo{
			Filename: name,
			Date:     b.Date,
			Size:     int64(len(b.Content)),
		})
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Date.After(backups[j].Date)
	})

	c.IndentedJSON(http.StatusOK, backups)
}

func (s *Server) getBackup(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, files, ok := s.lookup(c)
	if !ok {
		return
	}

	filename := c.Param("filename")
	b, ok := files[filename]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "backup file not found: " + filename})
		return
	}

	c.Header("Content-Type", "application/x-yaml")
	c.String(http.StatusOK, b.Content)
}

func (s *Server) diffBackups(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, files, ok := s.lookup(c)
	if !ok {
		return
	}

	left, right := c.Param("left"), c.Param("right")
	lb, lok := files[left]
	rb, rok := files[right]
	if !lok || !rok {
		c.JSON(http.StatusNotFound, gin.H{"error": "backup file not found"})
		return
	}

	c.JSON(http.StatusOK, historysdk.BackupDiffResponse{
		LeftFilename:  left,
		RightFilename: right,
		LeftContent:   lb.Content,
		RightContent:  rb.Content,
		Diff:          lineDiff(lb.Content, rb.Content),
	})
}

func (s *Server) restoreBackup(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, files, ok := s.lookup(c)
	if !ok {
		return
	}

	filename := c.Param("filename")
	if _, ok := files[filename]; !ok {
		c.JSON(http.StatusNotFound, historysdk.RestoreBackupResponse{
			Success: false,
			Error:   "Failed to load backup: backup file not found: " + filename,
		})
		return
	}

	c.JSON(http.StatusOK, historysdk.RestoreBackupResponse{
		Success: true,
		Message: "Successfully restored backup to " + c.Param("group"),
	})
}

func (s *Server) deleteBackup(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, files, ok := s.lookup(c)
	if !ok {
		return
	}

	filename := c.Param("filename")
	if _, ok := files[filename]; !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "backup file not found: " + filename})
		return
	}
	delete(files, filename)
	s.refreshLocked(key)

	c.JSON(http.StatusOK, gin.H{"status": "backup deleted successfully"})
}

func (s *Server) deleteAllBackups(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, _, ok := s.lookup(c)
	if !ok {
		return
	}
	delete(s.backups, key)
	delete(s.configs, key)

	c.JSON(http.StatusOK, gin.H{"status": "all backups deleted successfully"})
}

func (s *Server) triggerBackup(c *gin.Context) {
	s.mu.Lock()
	s.backupRun++
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"status": "backup process completed"})
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.Settings())
}

func (s *Server) updateSettings(c *gin.Context) {
	var settings historysdk.AppSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, historysdk.UpdateSettingsResponse{
			Success: false,
			Error:   "invalid settings: " + err.Error(),
		})
		return
	}
	s.SetSettings(settings)

	c.JSON(http.StatusOK, historysdk.UpdateSettingsResponse{
		Success: true,
		Message: "Settings updated successfully",
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, historysdk.HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) version(c *gin.Context) {
	c.JSON(http.StatusOK, historysdk.VersionResponse{
		Version: ServerVersion,
		Commit:  ServerCommit,
	})
}

// lineDiff marks lines that differ at the same position. Good enough for tests.
func lineDiff(left, right string) string {
	l := strings.Split(left, "\n")
	r := strings.Split(right, "\n")

	var sb strings.Builder
	for i := 0; i < max(len(l), len(r)); i++ {
		var a, b string
		if i < len(l) {
			a = l[i]
		}
		if i < len(r) {
			b = r[i]
		}
		if a == b {
			continue
		}
		if i < len(l) {
			sb.WriteString("-" + a + "\n")
		}
		if i < len(r) {
			sb.WriteString("+" + b + "\n")
		}
	}
	return sb.String()
}
