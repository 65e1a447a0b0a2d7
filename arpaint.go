package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogpu/gg"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"arpaint/calibration"
	"arpaint/canvas"
	"arpaint/config"
	"arpaint/detection"
	"arpaint/overlay"
	"arpaint/spectator"
	"arpaint/tracking"
	"arpaint/zones"
)

const (
	statsInterval   = 5 * time.Second
	publishInterval = 200 * time.Millisecond
	saveTimeLayout  = "Mon_Jan_2_15:04:05_2006"
)

var (
	// logger carries the session id on every line
	logger      *logrus.Entry
	verboseMode bool
)

// debugMsg is the global convenience function for component-tagged debug logging
func debugMsg(component, message string) {
	if logger == nil {
		// Fallback if logger not initialized
		fmt.Printf("[%s][%s] %s\n", time.Now().Format("15:04:05.000"), component, message)
		return
	}
	logger.WithField("component", component).Debug(message)
}

// debugMsgVerbose only outputs if debug-verbose flag is enabled
func debugMsgVerbose(component, message string) {
	if !verboseMode {
		return
	}
	debugMsg(component, message)
}

// setupLogging configures logrus and routes gg's slog output into it. The
// returned writer must be closed at exit.
func setupLogging(cfg *config.Config, sessionID string) io.Closer {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	logrus.SetLevel(logrus.InfoLevel)
	ggLevel := slog.LevelWarn
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
		ggLevel = slog.LevelDebug
	}
	verboseMode = cfg.DebugVerbose
	logger = logrus.WithField("session_id", sessionID)

	ggOut := logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
	gg.SetLogger(slog.New(slog.NewTextHandler(ggOut, &slog.HandlerOptions{Level: ggLevel})))

	overlay.SetDebugFunction(debugMsg)
	overlay.SetDebugVerboseFunction(debugMsgVerbose)
	detection.SetDebugFunction(debugMsg)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	return ggOut
}

// app is everything the tick loop owns
type app struct {
	cfg       *config.Config
	sessionID string

	camera    *Camera
	display   *Display
	providers *detection.ProviderManager
	session   *canvas.Session
	renderer  *overlay.Renderer
	stats     *TickStats

	// colouring mode only
	page     *overlay.Page
	sheet    gocv.Mat
	accuracy int

	hub         *spectator.Hub
	pending     bool
	lastPublish time.Time
	lastFPS     float64
}

func newApp(cfg *config.Config, sessionID string, limits calibration.Limits) (*app, error) {
	camera, err := OpenCamera(cfg.Camera, cfg.Mirror)
	if err != nil {
		return nil, err
	}
	size, err := camera.Size()
	if err != nil {
		camera.Close()
		return nil, err
	}
	debugMsg("CAMERA", fmt.Sprintf("frame size %dx%d", size.X, size.Y))

	mouse := tracking.NewMouse()
	providers := detection.NewProviderManager()
	if err := providers.Initialize(detection.Options{
		UseMouse: cfg.UseMouse,
		Mouse:    mouse,
		Limits:   limits,
		Smooth:   cfg.Smooth,
	}); err != nil {
		camera.Close()
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		sessionID: sessionID,
		camera:    camera,
		display:   NewDisplay(cfg.Coloring),
		providers: providers,
		session:   canvas.NewSession(cfg.PreventShake),
		renderer:  overlay.NewRenderer(),
		stats:     NewTickStats(),
		sheet:     gocv.NewMat(),
		accuracy:  -1,
		pending:   true,
	}

	if mp, ok := providers.GetProvider().(*detection.MouseProvider); ok {
		a.display.SetMouseHandler(mp.Handler())
	}

	if cfg.Coloring {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		grid := zones.Generate(size.X, size.Y, rand.New(rand.NewSource(seed)))
		page, err := overlay.NewPage(grid, a.renderer)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.page = page
		logger.WithFields(logrus.Fields{"seed": seed, "zones": len(grid.Zones)}).Info("Colouring page ready")
		a.showLegend()
	}
	return a, nil
}

// run ticks until quit, SIGINT or a camera failure.
func (a *app) run(ctx context.Context) error {
	frame := gocv.NewMat()
	defer frame.Close()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Interrupted, shutting down")
			return nil
		default:
		}

		more, err := a.tick(&frame)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// tick runs one acquire, step, render, command cycle. It reports false once
// the user quits.
func (a *app) tick(frame *gocv.Mat) (bool, error) {
	start := time.Now()
	if err := a.camera.Read(frame); err != nil {
		return false, err
	}
	a.stats.UpdateRead(time.Since(start))

	start = time.Now()
	sample, vis := a.providers.Locate(*frame)
	a.stats.UpdateLocate(time.Since(start))
	a.display.ShowPencil(vis)
	vis.Close()

	if a.session.Step(sample) {
		a.pending = true
		debugMsgVerbose("SESSION", fmt.Sprintf("rev=%d moves=%d pencil=%v mode=%s",
			a.session.Revision(), a.session.History.Len(), sample.Point, a.session.Figures.Mode()))
	}

	start = time.Now()
	drawing, err := a.compose(*frame)
	if err != nil {
		return false, err
	}
	defer drawing.Close()

	shown := drawing.Clone()
	defer shown.Close()
	mc := NewMatCanvas(&shown)
	a.renderer.DrawPointer(mc, sample.Point)
	if a.cfg.StatusOverlay {
		a.renderer.DrawStatus(mc, image.Pt(shown.Cols(), shown.Rows()), a.status())
	}
	a.display.Show(shown)
	a.stats.UpdateRender(time.Since(start))

	a.publish(drawing)

	cmd := canvas.ParseKey(a.display.WaitKey(1))
	effect := a.session.Apply(cmd)
	if cmd != canvas.CmdNone {
		debugMsg("KEY", fmt.Sprintf("%s -> %s", cmd, effect))
		a.pending = true
	}

	switch effect {
	case canvas.EffectQuit:
		return false, nil
	case canvas.EffectSave:
		a.save(drawing)
	case canvas.EffectEvaluate:
		a.evaluate()
	}

	a.lastFPS = a.stats.UpdateFPS()
	if a.stats.SinceReport() >= statsInterval {
		fps, avgRead, avgLocate, avgRender := a.stats.GetStats()
		debugMsg("STATS", fmt.Sprintf("%.1f fps | read %v | locate %v | render %v | moves %d",
			fps, avgRead, avgLocate, avgRender, a.session.History.Len()))
	}
	return true, nil
}

// compose returns the drawing for this tick without pointer or status: the
// history replayed on the camera frame, or the colouring page.
func (a *app) compose(frame gocv.Mat) (gocv.Mat, error) {
	if a.page == nil {
		drawing := frame.Clone()
		a.session.History.Render(NewMatCanvas(&drawing))
		return drawing, nil
	}

	// the page only changes with the history
	img, fresh := a.page.Frame(a.session.History, a.session.Revision())
	if fresh || a.sheet.Empty() {
		mat, err := imageToBGR(img)
		if err != nil {
			return gocv.NewMat(), err
		}
		a.sheet.Close()
		a.sheet = mat
	}
	return a.sheet.Clone(), nil
}

func (a *app) status() overlay.Status {
	return overlay.Status{
		Color:     a.session.Pencil.Color,
		Thickness: a.session.Pencil.Thickness,
		Mode:      a.session.Figures.Mode(),
		Source:    a.providers.GetProviderInfo().Kind.String(),
		FPS:       a.lastFPS,
	}
}

// save writes the drawing under the output directory. In colouring mode the
// graded page is written instead and the score is updated. Failures are
// logged and the session continues.
func (a *app) save(drawing gocv.Mat) {
	path := filepath.Join(a.cfg.OutDir, fmt.Sprintf("drawing_%s.png", time.Now().Format(saveTimeLayout)))
	log := logger.WithField("path", path)

	if a.page != nil {
		score, err := a.page.Save(a.session.History, path)
		if err != nil {
			log.WithError(err).Error("Failed to save drawing")
			return
		}
		a.setAccuracy(score)
	} else if ok := gocv.IMWrite(path, drawing); !ok {
		log.Error("Failed to save drawing")
		return
	}

	log.WithField("moves", a.session.History.Len()).Info("Drawing saved")
	fmt.Printf("💾 Drawing saved: %s\n", path)
}

func (a *app) evaluate() {
	if a.page == nil {
		debugMsg("EVALUATE", "grading is only available with -coloring")
		return
	}
	score, _ := a.page.Score(a.session.History)
	a.setAccuracy(score)
}

func (a *app) setAccuracy(score int) {
	a.accuracy = score
	logger.WithField("accuracy", score).Info("Page graded")
	fmt.Printf("🎯 Accuracy: %d%%\n", score)
	a.showLegend()
}

func (a *app) showLegend() {
	legend, err := a.renderer.Legend(a.page.Grid, a.accuracy)
	if err != nil {
		logger.WithError(err).Warn("Failed to render legend")
		return
	}
	defer legend.Close()
	if err := a.display.ShowLegend(legend.Image()); err != nil {
		logger.WithError(err).Warn("Failed to show legend")
	}
}

// publish hands a snapshot to the spectator hub when something changed,
// at most once per publishInterval.
func (a *app) publish(drawing gocv.Mat) {
	if a.hub == nil || !a.pending || time.Since(a.lastPublish) < publishInterval {
		return
	}

	snap := spectator.Snapshot{
		SessionID: a.sessionID,
		Revision:  a.session.Revision(),
		Color:     canvas.ColorName(a.session.Pencil.Color),
		Thickness: a.session.Pencil.Thickness,
		Mode:      a.session.Figures.Mode(),
		Source:    a.providers.GetProviderInfo().Kind.String(),
		MoveCount: a.session.History.Len(),
		UpdatedAt: time.Now(),
		Moves:     a.session.History.Moves(),
	}
	if a.accuracy >= 0 {
		accuracy := a.accuracy
		snap.Accuracy = &accuracy
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, drawing)
	if err != nil {
		debugMsg("SPECTATOR", fmt.Sprintf("frame encode failed: %v", err))
	} else {
		snap.Frame = append([]byte(nil), buf.GetBytes()...)
		buf.Close()
	}

	if a.hub.Publish(snap) {
		a.pending = false
		a.lastPublish = time.Now()
	}
}

func (a *app) Close() {
	if a.display != nil {
		a.display.Close()
	}
	a.sheet.Close()
	if err := a.providers.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close pointer provider")
	}
	if err := a.camera.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close camera")
	}
}

func main() {
	if err := config.LoadEnv(); err != nil {
		logrus.Fatalf("Failed to load .env: %v", err)
	}
	cfg, err := config.FromEnvironment()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("❌ Configuration Error: %v\n", err)
		fmt.Println("Use -h for usage examples and flag descriptions")
		os.Exit(1)
	}

	sessionID := uuid.NewString()
	ggOut := setupLogging(cfg, sessionID)
	defer ggOut.Close()

	// Calibration comes first in every mode: no window opens without valid limits
	limits, err := calibration.Load(cfg.LimitsPath)
	if err != nil {
		logrus.Fatalf("Invalid calibration: %v", err)
	}
	debugMsg("CALIBRATION", fmt.Sprintf("limits loaded from %s: %+v", cfg.LimitsPath, limits))

	fmt.Printf("🎨 arpaint session %s\n", sessionID)
	fmt.Println("   r/g/b colour, +/- thickness, s/e/o figures, c clear, w save, v grade, q quit")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, sessionID, limits)
	if err != nil {
		logger.WithError(err).Error("Startup failed")
		os.Exit(1)
	}
	defer a.Close()

	if cfg.Spectate != "" {
		a.hub = spectator.NewHub(sessionID)
		go a.hub.Run(ctx)

		srv := spectator.NewServer(a.hub)
		errc := srv.Start(cfg.Spectate)
		go func() {
			for err := range errc {
				logger.WithError(err).Error("Spectator feed stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Warn("Spectator shutdown failed")
			}
		}()
		fmt.Printf("📡 Spectator feed on %s\n", cfg.Spectate)
	}

	if err := a.run(ctx); err != nil {
		logger.WithError(err).Error("Session ended")
		stop()
		a.Close()
		os.Exit(1)
	}
	logger.WithField("moves", a.session.History.Len()).Info("Session finished")
}
