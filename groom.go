// Groom's Game
//
// The host uploads a video of the bride answering questions. The video is
// sent to a video-analysis provider which returns the questions, the answers,
// and where in the video each question starts. When automatic analysis is not
// available the host types the pairs in by hand. Players then join with a
// four character code and guess the bride's answers, one question at a time.
//
// Features:
// - One session per browser, identified by cookie (playerID)
// - WebSocket command channel at /groom/ws; every command is applied in order
//   by the session's hub, which then pushes the new state to the browser
// - Video upload at /groom/extract with progress messages over the WebSocket
// - Manual question entry whenever extraction is unavailable or fails
// - Question sets spanning several videos, assembled before the game starts
// - Join links and QR codes for players and for the groom
// - Sessions auto-reaped after configurable idle timeout

package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/groomgame/games/groom"
	"github.com/Seednode/groomgame/games/groom/extract"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

var (
	errHubClosed           = errors.New("session has ended")
	errExtractionCancelled = errors.New("video analysis was cancelled")
)

// Messages coming from clients
type ClientMessage struct {
	Type      string `json:"type"`               // "join", "start", "advance", "submit", "reset", "manual_*"
	Code      string `json:"code,omitempty"`     // join
	Name      string `json:"name,omitempty"`     // join
	Groom     bool   `json:"groom,omitempty"`    // join
	Answer    string `json:"answer,omitempty"`   // submit / manual_add
	Question  string `json:"question,omitempty"` // manual_add
	StartTime int    `json:"start,omitempty"`    // manual_add, seconds
}

// StateMessage carries everything the client renders.
type StateMessage struct {
	Type string     `json:"type"` // "state"
	View groom.View `json:"view"`
}

// AnswerResultMessage tells a player whether their guess matched.
type AnswerResultMessage struct {
	Type    string `json:"type"` // "answer_result"
	Correct bool   `json:"correct"`
	Answer  string `json:"answer"`
}

// StatusMessage reports extraction progress.
type StatusMessage struct {
	Type    string `json:"type"` // "extract_status"
	Message string `json:"message"`
}

// ErrorMessage is sent to the client whose command was rejected.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ExtractResponse is the body returned by the upload endpoint.
type ExtractResponse struct {
	Outcome string `json:"outcome"` // "ready", "collected", "manual", "failed"
	VideoID string `json:"video_id,omitempty"`
	Count   int    `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

var clientCommands = map[string]groom.CommandKind{
	"join":            groom.CmdJoin,
	"start":           groom.CmdStart,
	"advance":         groom.CmdAdvance,
	"submit":          groom.CmdSubmit,
	"reset":           groom.CmdReset,
	"manual_begin":    groom.CmdManualBegin,
	"manual_add":      groom.CmdManualAdd,
	"manual_finalize": groom.CmdManualFinalize,
	"manual_discard":  groom.CmdManualDiscard,
}

func (msg ClientMessage) command() (groom.Command, bool) {
	kind, ok := clientCommands[msg.Type]
	if !ok {
		return groom.Command{}, false
	}

	return groom.Command{
		Kind:      kind,
		Code:      msg.Code,
		Name:      msg.Name,
		IsGroom:   msg.Groom,
		Answer:    msg.Answer,
		Question:  msg.Question,
		StartTime: msg.StartTime,
	}, true
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type hubCommand struct {
	client *Client
	cmd    groom.Command
	reply  chan error

	// Set for commands that apply an extraction's outcome; once it is
	// cancelled the command is refused.
	ctx context.Context
}

// Hub serializes every action on one browser's session.
type Hub struct {
	id         string
	clients    map[*Client]bool
	controller *groom.Controller

	register chan *Client
	unreg    chan *Client
	commands chan hubCommand
	notices  chan any
	views    chan chan groom.View
	done     chan struct{}
	once     sync.Once

	// Reports whether a join code is hosted in this process; nil accepts any.
	codeExists func(string) bool

	mu sync.RWMutex

	lastActive    time.Time
	connected     int
	hostedCode    string
	cancelExtract context.CancelFunc
}

func newHub(playerID string, codeExists func(string) bool) *Hub {
	return &Hub{
		id:         playerID,
		clients:    make(map[*Client]bool),
		controller: groom.NewController(groom.NewSession()),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		commands:   make(chan hubCommand),
		notices:    make(chan any, 16),
		views:      make(chan chan groom.View),
		done:       make(chan struct{}),
		codeExists: codeExists,
		lastActive: time.Now(),
	}
}

func (h *Hub) run(cfg *Config, m *Metrics) {
	for {
		select {
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
				_ = c.conn.Close()
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.mu.Lock()
			h.lastActive = time.Now()
			h.connected = len(h.clients)
			h.mu.Unlock()

			h.sendTo(c, h.stateMessage())

		case c := <-h.unreg:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Lock()
			h.lastActive = time.Now()
			h.connected = len(h.clients)
			h.mu.Unlock()

		case hc := <-h.commands:
			h.apply(cfg, m, hc)

		case n := <-h.notices:
			h.broadcast(n)

		case reply := <-h.views:
			reply <- h.controller.View()
		}
	}
}

func (h *Hub) apply(cfg *Config, m *Metrics, hc hubCommand) {
	h.mu.Lock()
	h.lastActive = time.Now()
	h.mu.Unlock()

	var (
		res groom.Result
		err error
	)

	switch {
	case hc.ctx != nil && hc.ctx.Err() != nil:
		err = fmt.Errorf("%w: %w", groom.ErrStage, errExtractionCancelled)
	case hc.cmd.Kind == groom.CmdJoin && h.codeExists != nil && !h.codeExists(groom.NormalizeCode(hc.cmd.Code)):
		err = fmt.Errorf("%w: no game is running with code %q", groom.ErrValidation, groom.NormalizeCode(hc.cmd.Code))
	default:
		res, err = h.controller.Dispatch(hc.cmd)
	}

	if err == nil && (hc.cmd.Kind == groom.CmdReset || hc.cmd.Kind == groom.CmdManualDiscard) {
		if h.abortExtraction() {
			logf(cfg, "EXTRACT: Cancelled analysis for %s on %s", h.id, hc.cmd.Kind)
		}
	}

	m.observeCommand(string(hc.cmd.Kind), err)

	if hc.reply != nil {
		hc.reply <- err
	}

	if err != nil {
		logf(cfg, "GAMES: Rejected %s from %s: %v", hc.cmd.Kind, h.id, err)

		if hc.client != nil {
			h.sendTo(hc.client, ErrorMessage{
				Type:    "error",
				Kind:    errorKind(err),
				Message: err.Error(),
			})
		}

		return
	}

	view := h.controller.View()

	h.mu.Lock()
	h.hostedCode = ""
	if view.IsHost && view.Stage != groom.StageSetup {
		h.hostedCode = view.Code
	}
	h.mu.Unlock()

	switch hc.cmd.Kind {
	case groom.CmdCreateHost, groom.CmdManualFinalize:
		logf(cfg, "GAMES: Created game %s with %d questions", view.Code, view.QuestionCount)
	case groom.CmdJoin:
		logf(cfg, "GAMES: Player %q joined %s", hc.cmd.Name, view.Code)
	case groom.CmdStart, groom.CmdAdvance:
		logf(cfg, "GAMES: Game %s at question %d/%d (%s)", view.Code, view.CurrentIndex+1, view.QuestionCount, view.Stage)
	}

	if res.Correct != nil && hc.client != nil {
		answer := ""
		if view.Current != nil {
			answer = view.Current.Answer
		}

		h.sendTo(hc.client, AnswerResultMessage{
			Type:    "answer_result",
			Correct: *res.Correct,
			Answer:  answer,
		})
	}

	h.broadcast(StateMessage{Type: "state", View: view})
}

func (h *Hub) stateMessage() StateMessage {
	return StateMessage{Type: "state", View: h.controller.View()}
}

// sendTo drops clients that cannot keep up. Only called from run.
func (h *Hub) sendTo(c *Client, msg any) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcast(msg any) {
	for c := range h.clients {
		h.sendTo(c, msg)
	}
}

// do applies cmd on the hub and waits for the outcome. The command is
// refused if ctx has been cancelled by the time the hub gets to it.
func (h *Hub) do(ctx context.Context, cmd groom.Command) error {
	reply := make(chan error, 1)

	select {
	case h.commands <- hubCommand{cmd: cmd, reply: reply, ctx: ctx}:
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", groom.ErrStage, errExtractionCancelled)
	case <-h.done:
		return errHubClosed
	}

	select {
	case err := <-reply:
		return err
	case <-h.done:
		return errHubClosed
	}
}

func (h *Hub) view() (groom.View, error) {
	reply := make(chan groom.View, 1)

	select {
	case h.views <- reply:
	case <-h.done:
		return groom.View{}, errHubClosed
	}

	select {
	case v := <-reply:
		return v, nil
	case <-h.done:
		return groom.View{}, errHubClosed
	}
}

func (h *Hub) notify(msg any) {
	select {
	case h.notices <- msg:
	case <-h.done:
	default:
	}
}

// startExtraction registers cancel so that ending the session aborts the
// extraction. It reports false if one is already running.
func (h *Hub) startExtraction(cancel context.CancelFunc) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancelExtract != nil {
		return false
	}

	h.cancelExtract = cancel
	h.lastActive = time.Now()

	return true
}

// abortExtraction cancels the running extraction, if any. The slot stays
// taken until the extraction unwinds and calls finishExtraction.
func (h *Hub) abortExtraction() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancelExtract == nil {
		return false
	}

	h.cancelExtract()

	return true
}

func (h *Hub) finishExtraction() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cancelExtract = nil
	h.lastActive = time.Now()
}

func (h *Hub) code() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.hostedCode
}

func (h *Hub) idleSince(cutoff time.Time) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.connected == 0 && h.cancelExtract == nil && h.lastActive.Before(cutoff)
}

// close ends the session, cancelling any extraction in flight.
func (h *Hub) close() {
	h.once.Do(func() {
		h.mu.Lock()
		if h.cancelExtract != nil {
			h.cancelExtract()
		}
		h.mu.Unlock()

		close(h.done)
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const playerCookieName = "groomgame_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds one hub per browser, keyed by player cookie.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration
	strictCodes bool
	metrics     *Metrics
}

func newGameManager(ctx context.Context, cfg *Config, m *Metrics) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		idleTimeout: cfg.sessionTimeout,
		strictCodes: cfg.strictCodes,
		metrics:     m,
	}
	if gm.idleTimeout > 0 {
		go gm.reaperLoop(ctx)
	}
	return gm
}

func (gm *GameManager) getHub(cfg *Config, playerID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[playerID]; ok {
		return hub
	}

	var codeExists func(string) bool
	if gm.strictCodes {
		codeExists = gm.hosting
	}

	hub := newHub(playerID, codeExists)
	gm.hubs[playerID] = hub
	gm.metrics.sessions.Inc()
	go hub.run(cfg, gm.metrics)
	return hub
}

func (gm *GameManager) lookup(playerID string) (*Hub, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	hub, ok := gm.hubs[playerID]
	return hub, ok
}

// hosting reports whether some hub is hosting a game under code.
func (gm *GameManager) hosting(code string) bool {
	if code == "" {
		return false
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	for _, hub := range gm.hubs {
		if hub.code() == code {
			return true
		}
	}
	return false
}

// reaperLoop periodically ends sessions that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop(ctx context.Context) {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			gm.closeAll()
			return
		case <-ticker.C:
		}

		cutoff := time.Now().Add(-gm.idleTimeout)

		gm.mu.Lock()
		for id, hub := range gm.hubs {
			if hub.idleSince(cutoff) {
				delete(gm.hubs, id)
				gm.metrics.sessions.Dec()
				hub.close()
			}
		}
		gm.mu.Unlock()
	}
}

func (gm *GameManager) closeAll() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, hub := range gm.hubs {
		delete(gm.hubs, id)
		gm.metrics.sessions.Dec()
		hub.close()
	}
}

func serveWS(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		hub := gm.getHub(cfg, playerID)

		// The server-wide deadlines would otherwise cut off long-lived sockets.
		rc := http.NewResponseController(w)
		_ = rc.SetReadDeadline(time.Time{})
		_ = rc.SetWriteDeadline(time.Time{})

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "SERVE: WebSocket upgrade failed for %s: %v", realIP(r), err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 16),
			playerID: playerID,
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			_ = conn.Close()
			return
		}

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		cmd, ok := msg.command()
		if !ok {
			continue
		}

		select {
		case h.commands <- hubCommand{client: c, cmd: cmd}:
		case <-h.done:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// serveExtract streams an uploaded video into the extractor and moves the
// caller's session on to the lobby or to manual entry. With ?collect=1, or
// while a question set is already being assembled, extracted questions are
// added to that set instead of starting a game.
func serveExtract(cfg *Config, gm *GameManager, ex *extract.Extractor, m *Metrics) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		hub := gm.getHub(cfg, playerID)

		view, err := hub.view()
		if err != nil {
			_ = writeJSON(cfg, w, http.StatusGone, ExtractResponse{Outcome: "failed", Error: err.Error()})
			return
		}
		if view.Stage != groom.StageSetup {
			_ = writeJSON(cfg, w, http.StatusConflict, ExtractResponse{Outcome: "failed", Error: "a game is already in progress"})
			return
		}

		collect := view.Editor != nil || r.URL.Query().Get("collect") == "1"

		deadline := time.Now().Add(cfg.extractTimeout + 5*time.Minute)
		rc := http.NewResponseController(w)
		_ = rc.SetReadDeadline(deadline)
		_ = rc.SetWriteDeadline(deadline)

		r.Body = http.MaxBytesReader(w, r.Body, cfg.maxUpload)

		video, err := videoPart(r)
		if err != nil {
			_ = writeJSON(cfg, w, http.StatusBadRequest, ExtractResponse{Outcome: "failed", Error: err.Error()})
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		if !hub.startExtraction(cancel) {
			_ = writeJSON(cfg, w, http.StatusConflict, ExtractResponse{Outcome: "failed", Error: "a video is already being analyzed"})
			return
		}
		defer hub.finishExtraction()

		video.ID = uuid.NewString()[:8]
		ref := groom.VideoRef{ID: video.ID, Name: video.Name}

		logf(cfg, "EXTRACT: Analyzing %q (%s) for %s", video.Name, video.ID, realIP(r))

		started := time.Now()
		records, err := ex.Extract(ctx, video, func(message string) {
			logf(cfg, "EXTRACT: %s: %s", video.ID, message)
			hub.notify(StatusMessage{Type: "extract_status", Message: message})
		})
		m.observeExtraction(err, started)

		if ctx.Err() != nil {
			logf(cfg, "EXTRACT: %s abandoned: %v", video.ID, context.Cause(ctx))
			_ = writeJSON(cfg, w, http.StatusConflict, ExtractResponse{Outcome: "failed", VideoID: video.ID, Error: errExtractionCancelled.Error()})
			return
		}

		switch {
		case err == nil:
			cmd, outcome := groom.Command{Kind: groom.CmdCreateHost, Questions: records}, "ready"
			if collect {
				cmd, outcome = groom.Command{Kind: groom.CmdCollect, Video: ref, Questions: records}, "collected"
			}

			if err := hub.do(ctx, cmd); err != nil {
				_ = writeJSON(cfg, w, errorStatus(err), ExtractResponse{Outcome: "failed", VideoID: video.ID, Error: err.Error()})
				return
			}

			logf(cfg, "EXTRACT: %s produced %d questions in %s", video.ID, len(records), time.Since(started).Round(time.Millisecond))
			_ = writeJSON(cfg, w, http.StatusOK, ExtractResponse{Outcome: outcome, VideoID: video.ID, Count: len(records)})

		case errors.Is(err, extract.ErrUnavailable):
			logf(cfg, "EXTRACT: %s falling back to manual entry: %v", video.ID, err)

			if err := hub.do(ctx, groom.Command{Kind: groom.CmdManualBegin, Video: ref}); err != nil {
				_ = writeJSON(cfg, w, errorStatus(err), ExtractResponse{Outcome: "failed", VideoID: video.ID, Error: err.Error()})
				return
			}

			_ = writeJSON(cfg, w, http.StatusOK, ExtractResponse{Outcome: "manual", VideoID: video.ID, Error: err.Error()})

		default:
			logf(cfg, "EXTRACT: %s failed: %v", video.ID, err)

			_ = hub.do(ctx, groom.Command{Kind: groom.CmdVideoPending, Video: ref})
			_ = writeJSON(cfg, w, errorStatus(err), ExtractResponse{Outcome: "failed", VideoID: video.ID, Error: err.Error()})
		}
	}
}

// videoPart returns the "video" field of a multipart upload without
// buffering it.
func videoPart(r *http.Request) (extract.Video, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return extract.Video{}, err
	}

	for {
		part, err := mr.NextPart()
		if err != nil {
			return extract.Video{}, errors.New("no video in upload")
		}

		if part.FormName() != "video" {
			continue
		}

		return extract.Video{
			Name:     part.FileName(),
			MIMEType: videoMIMEType(part.Header.Get("Content-Type"), part.FileName()),
			Body:     part,
		}, nil
	}
}

func baseURL(cfg *Config, r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return &url.URL{
		Scheme: scheme,
		Host:   r.Host,
		Path:   cfg.prefix + "/",
	}
}

// joinLink builds the link players open to join code; the groom's link
// carries role=groom.
func joinLink(base *url.URL, code string, isGroom bool) string {
	u := *base

	q := url.Values{}
	q.Set("code", code)
	if isGroom {
		q.Set("role", "groom")
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// joinParams reads the code and role from a join link's query.
func joinParams(q url.Values) (string, bool) {
	return groom.NormalizeCode(q.Get("code")), strings.EqualFold(q.Get("role"), "groom")
}

func hostedCode(gm *GameManager, r *http.Request) (string, bool) {
	c, err := r.Cookie(playerCookieName)
	if err != nil {
		return "", false
	}

	hub, ok := gm.lookup(c.Value)
	if !ok {
		return "", false
	}

	code := hub.code()

	return code, code != ""
}

func serveLinks(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		code, ok := hostedCode(gm, r)
		if !ok {
			http.Error(w, "not hosting a game", http.StatusNotFound)
			return
		}

		base := baseURL(cfg, r)

		_ = writeJSON(cfg, w, http.StatusOK, map[string]string{
			"code":   code,
			"player": joinLink(base, code, false),
			"groom":  joinLink(base, code, true),
		})
	}
}

// QR handler: generates a PNG QR code for the caller's join link using go-qrcode.
func serveQR(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		code, ok := hostedCode(gm, r)
		if !ok {
			http.Error(w, "not hosting a game", http.StatusNotFound)
			return
		}

		link := joinLink(baseURL(cfg, r), code, r.URL.Query().Get("role") == "groom")

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)
		_, _ = w.Write(png)
	}
}

// serveCodeCheck answers 204 when the code is hosted here and 404 otherwise.
func serveCodeCheck(gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		if gm.hosting(groom.NormalizeCode(p.ByName("code"))) {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		http.Error(w, "no such game", http.StatusNotFound)
	}
}

// registerGroomGame sets up routes so that:
//   - $path/ws              → WebSocket command channel for the caller's session
//   - $path/extract         → video upload and analysis
//   - $path/link            → join links for the hosted game
//   - $path/qr              → PNG QR code for a join link (?role=groom)
//   - $path/codes/:code     → whether a code is hosted here
func registerGroomGame(ctx context.Context, cfg *Config, path string, mux *httprouter.Router, ex *extract.Extractor, m *Metrics) *GameManager {
	gm := newGameManager(ctx, cfg, m)

	mux.GET(cfg.prefix+path+"/ws", serveWS(cfg, gm))
	mux.POST(cfg.prefix+path+"/extract", serveExtract(cfg, gm, ex, m))
	mux.GET(cfg.prefix+path+"/link", serveLinks(cfg, gm))
	mux.GET(cfg.prefix+path+"/qr", serveQR(cfg, gm))
	mux.GET(cfg.prefix+path+"/codes/:code", serveCodeCheck(gm))

	return gm
}
