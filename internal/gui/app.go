package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/control"
	"github.com/san-kum/orbitbox/internal/metrics"
	"github.com/san-kum/orbitbox/internal/physics"
	"github.com/san-kum/orbitbox/internal/scene"
	"github.com/san-kum/orbitbox/internal/sim"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

const (
	screenW      = 1280
	screenH      = 720
	maxTelemetry = 400
)

// App is the raylib front end. The camera orbits the origin and the held
// body floats HoldDepth units in front of it.
type App struct {
	manual   *control.Manual
	initial  *scene.Scene
	name     string
	g, dt, t float64
	running  bool
	failed   bool
	status   string

	Camera    rl.Camera3D
	Yaw       float64
	Pitch     float64
	Dist      float64
	HoldDepth float64

	collisions *metrics.Collisions
	Telemetry  []float64
}

func initWindow() {
	rl.InitWindow(screenW, screenH, "orbitbox")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// NewApp wraps sc, which is edited in place.
func NewApp(sc *scene.Scene, name string, cfg *config.Config) *App {
	a := &App{
		manual:     control.NewManual(sc, cfg.Interaction, cfg.Dt),
		initial:    sc.Clone(),
		name:       name,
		g:          cfg.G,
		dt:         cfg.Dt,
		running:    true,
		Dist:       50,
		HoldDepth:  20,
		collisions: metrics.NewCollisions(),
		Telemetry:  make([]float64, 0, maxTelemetry),
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 50),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
	}
	for _, b := range sc.Bodies() {
		a.Dist = math.Max(a.Dist, 3*(b.Position.Len()+b.Radius))
	}
	a.placeCamera()
	a.manual.HoldAt(a.holdPoint())
	return a
}

// Run opens a window and blocks until it is closed.
func Run(sc *scene.Scene, name string, cfg *config.Config) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(sc, name, cfg)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) eye() mgl64.Vec3 {
	cp := math.Cos(a.Pitch)
	return mgl64.Vec3{cp * math.Sin(a.Yaw), math.Sin(a.Pitch), cp * math.Cos(a.Yaw)}.Mul(a.Dist)
}

// forward is the unit view direction.
func (a *App) forward() mgl64.Vec3 {
	return a.eye().Mul(-1).Normalize()
}

func (a *App) holdPoint() mgl64.Vec3 {
	return a.eye().Add(a.forward().Mul(a.HoldDepth))
}

func (a *App) placeCamera() {
	e := a.eye()
	a.Camera.Position = vec(e)
	a.Camera.Target = rl.NewVector3(0, 0, 0)
}

func vec(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

var pressKeys = map[int32]control.Action{
	rl.KeyE:      control.SelectNext,
	rl.KeyQ:      control.SelectPrev,
	rl.KeyEscape: control.Deselect,
	rl.KeyT:      control.Denser,
	rl.KeyG:      control.Lighter,
	rl.KeyGrave:  control.ClearScene,
}

var holdKeys = map[int32]control.Action{
	rl.KeyH: control.MoveLeft,
	rl.KeyL: control.MoveRight,
	rl.KeyJ: control.MoveDown,
	rl.KeyK: control.MoveUp,
	rl.KeyU: control.MoveNear,
	rl.KeyI: control.MoveFar,
}

var slotKeys = []int32{
	rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive,
	rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine,
}

func (a *App) apply(act control.Action) {
	if err := a.manual.Apply(act); err != nil {
		a.status = err.Error()
		return
	}
	a.status = act.String()
}

func (a *App) Update() {
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if shift {
			a.apply(control.GrowRadius)
		} else {
			a.reset()
		}
	}
	if shift && rl.IsKeyPressed(rl.KeyF) {
		a.apply(control.ShrinkRadius)
	}
	for k, act := range pressKeys {
		if rl.IsKeyPressed(k) {
			a.apply(act)
		}
	}
	for k, act := range holdKeys {
		if rl.IsKeyDown(k) {
			a.apply(act)
		}
	}
	for i, k := range slotKeys {
		if rl.IsKeyPressed(k) {
			name, err := a.manual.LoadSlot(i + 1)
			if err != nil {
				a.status = err.Error()
			} else {
				a.status = "added " + name
			}
		}
	}

	// Camera: right drag or arrows orbit, minus/equal zoom.
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		d := rl.GetMouseDelta()
		a.Yaw -= float64(d.X) * 0.005
		a.Pitch += float64(d.Y) * 0.005
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.Yaw -= 0.02
	}
	if rl.IsKeyDown(rl.KeyRight) {
		a.Yaw += 0.02
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.Pitch += 0.02
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.Pitch -= 0.02
	}
	a.Pitch = math.Max(-1.5, math.Min(1.5, a.Pitch))
	if rl.IsKeyDown(rl.KeyMinus) {
		a.Dist *= 1.02
	}
	if rl.IsKeyDown(rl.KeyEqual) {
		a.Dist = math.Max(a.HoldDepth+1, a.Dist/1.02)
	}
	a.placeCamera()

	// Launch speed lives on the wheel, the middle button stops it.
	if w := rl.GetMouseWheelMove(); w != 0 {
		a.manual.Scene().AdjustLaunchSpeed(float64(w))
	}
	if rl.IsMouseButtonPressed(rl.MouseMiddleButton) {
		a.apply(control.LaunchStop)
	}

	a.manual.HoldAt(a.holdPoint())
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) || rl.IsKeyPressed(rl.KeyEnter) {
		if err := a.manual.Launch(a.forward()); err != nil {
			a.status = err.Error()
		}
	}

	if a.running && !a.failed {
		a.step()
	}
}

func (a *App) step() {
	sc := a.manual.Scene()
	sc.Step(a.dt, a.g)
	a.t += a.dt
	start, end := sc.SimRange()
	a.collisions.Observe(sim.Frame{Bodies: sc.Bodies(), Start: start, End: end, Time: a.t, Dt: a.dt})
	if !physics.IsFinite(sc.Bodies(), start, end) {
		a.failed = true
		a.status = fmt.Sprintf("%v at t=%.2f", sim.ErrInvalidState, a.t)
		return
	}
	a.Telemetry = append(a.Telemetry, physics.TotalEnergy(sc.Bodies(), start, end, a.dt, a.g))
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) reset() {
	a.manual.SetScene(a.initial.Clone())
	a.manual.HoldAt(a.holdPoint())
	a.t = 0
	a.failed = false
	a.collisions.Reset()
	a.Telemetry = a.Telemetry[:0]
	a.status = "reset"
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.drawScene()
	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) drawScene() {
	rl.BeginMode3D(a.Camera)
	rl.DrawGrid(40, 5)

	sc := a.manual.Scene()
	held := -1
	if _, ok := sc.Held(); ok {
		held = sc.Len() - 1
	}
	for i, b := range sc.Bodies() {
		look := sc.Look(i)
		col := rl.NewColor(look.Color[0], look.Color[1], look.Color[2], 255)
		pos := vec(b.Position)
		r := float32(b.Radius)
		switch {
		case i == held:
			rl.DrawSphereWires(pos, r, 8, 12, rl.ColorAlpha(col, 0.5))
		case look.Light:
			rl.DrawSphere(pos, r, col)
			rl.DrawSphereWires(pos, r*1.3, 8, 12, rl.ColorAlpha(col, 0.15))
		default:
			rl.DrawSphere(pos, r, col)
		}
		if i == sc.Selected() {
			rl.DrawSphereWires(pos, r*1.2, 8, 12, ColSelect)
		}
	}
	rl.EndMode3D()
}

func (a *App) DrawHUD() {
	sc := a.manual.Scene()
	rl.DrawText("orbitbox", 30, 30, 24, ColSelect)
	rl.DrawText(":: "+a.name, 150, 34, 16, ColText)

	status, col := "RUNNING", ColSelect
	switch {
	case a.failed:
		status, col = "HALTED", rl.Red
	case !a.running:
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, 1150, 30, 16, col)

	lines := []string{
		fmt.Sprintf("t       %.2f", a.t),
		fmt.Sprintf("bodies  %d", sc.NumSimulated()),
		fmt.Sprintf("hits    %d", a.collisions.Count()),
		fmt.Sprintf("launch  %.3g", sc.LaunchSpeed()/a.dt),
	}
	if sel := sc.Selected(); sel != scene.NoSelection {
		b := sc.Bodies()[sel]
		lines = append(lines, fmt.Sprintf("body %d  r=%.3g rho=%.3g m=%.3g", sel, b.Radius, b.Density, b.Mass))
	}
	for i, l := range lines {
		rl.DrawText(l, 30, int32(80+20*i), 16, ColText)
	}
	if a.status != "" {
		rl.DrawText(a.status, 30, 620, 14, ColAccent)
	}

	a.DrawTelemetry()
	rl.DrawText("[SPACE] PAUSE  [R] RESET  [CLICK] LAUNCH  [WHEEL] SPEED  [E/Q] SELECT", 560, 680, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 540
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), int32(rectX+width+10), int32(rectY+height-10), 14, ColText)
}
