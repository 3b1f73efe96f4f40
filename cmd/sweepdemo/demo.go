package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"glres/internal/config"
	"glres/internal/gldevice"
	"glres/internal/gpu"
	"glres/internal/graphics"
	"glres/internal/profiling"
	"glres/internal/resource"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	vertexShader = `#version 410 core
layout(location = 0) in vec3 aPos;
uniform mat4 proj;
out vec2 uv;
void main() {
	uv = fract(aPos.xy);
	gl_Position = proj * vec4(aPos, 1.0);
}
`
	fragmentShader = `#version 410 core
in vec2 uv;
uniform sampler2D tex;
out vec4 FragColor;
void main() {
	FragColor = texture(tex, uv);
}
`

	gridColumns    = 8
	offscreenSize  = 256
	rotateInterval = 30 // frames before the working set slides by one mesh
)

// demo drives two contexts through the mark/sweep frame cycle: the visible
// window draws a sliding working set of meshes, a hidden window renders
// into an offscreen target.
type demo struct {
	cfg config.Settings
	dev *gldevice.GL
	log *zap.Logger

	stack           *resource.Stack
	main, offscreen *resource.Context
	mainWin, offWin *glfw.Window

	program  *graphics.Shader
	vao      uint32
	textures []*gpu.Texture
	meshes   []*gpu.Mesh
	target   *gpu.RenderTarget

	frame   int
	limiter fpsLimiter
}

func newDemo(cfg config.Settings, dev *gldevice.GL, log *zap.Logger) (*demo, error) {
	mainWin, err := gldevice.OpenWindow(cfg.WindowWidth, cfg.WindowHeight, cfg.Title, true, nil)
	if err != nil {
		return nil, fmt.Errorf("open window: %w", err)
	}
	offWin, err := gldevice.OpenWindow(offscreenSize, offscreenSize, cfg.Title+" (offscreen)", false, nil)
	if err != nil {
		mainWin.Destroy()
		return nil, fmt.Errorf("open offscreen window: %w", err)
	}

	stack := resource.NewStack()
	d := &demo{
		cfg:       cfg,
		dev:       dev,
		log:       log,
		stack:     stack,
		main:      resource.NewContext("main", stack, dev, resource.WithBinder(gldevice.Window{Window: mainWin})),
		offscreen: resource.NewContext("offscreen", stack, dev, resource.WithBinder(gldevice.Window{Window: offWin})),
		mainWin:   mainWin,
		offWin:    offWin,
		target:    gpu.NewRenderTarget(offscreenSize, offscreenSize),
	}

	d.main.Do(func() {
		d.program, err = graphics.NewShader(vertexShader, fragmentShader)
		gl.GenVertexArrays(1, &d.vao)
	})
	if err != nil {
		d.destroyWindows()
		return nil, err
	}

	if d.textures, err = loadTextures(cfg); err != nil {
		d.close()
		return nil, err
	}
	pool := cfg.WorkingSet * 3
	for i := 0; i < pool; i++ {
		d.meshes = append(d.meshes, d.newMesh(i))
	}
	return d, nil
}

// loadTextures reads every image in cfg.TextureDir, falling back to
// generated checkerboards when none is configured or found.
func loadTextures(cfg config.Settings) ([]*gpu.Texture, error) {
	params := gpu.TextureParams{MinFilter: gpu.FilterLinear, MagFilter: gpu.FilterNearest, Wrap: gpu.WrapRepeat, Mipmaps: true}

	var out []*gpu.Texture
	if cfg.TextureDir != "" {
		entries, err := os.ReadDir(cfg.TextureDir)
		if err != nil {
			return nil, fmt.Errorf("read texture dir: %w", err)
		}
		cache := graphics.NewImageCache(cfg.MaxTextureSize)
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if !e.IsDir() && (ext == ".png" || ext == ".jpg" || ext == ".jpeg" || ext == ".bmp") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			img, err := cache.Get(filepath.Join(cfg.TextureDir, name))
			if err != nil {
				return nil, err
			}
			out = append(out, gpu.NewTexture(img, params))
		}
	}
	if len(out) > 0 {
		return out, nil
	}

	palette := []color.RGBA{
		{230, 80, 60, 255},
		{60, 160, 230, 255},
		{90, 200, 90, 255},
		{240, 200, 60, 255},
	}
	size := min(64, cfg.MaxTextureSize)
	for i, c := range palette {
		img := graphics.Checkerboard(size, 4<<(i%3), c, color.RGBA{20, 20, 20, 255})
		out = append(out, gpu.NewTexture(img, params))
	}
	return out, nil
}

// newMesh places quad i on the grid, textured with one of the shared
// textures.
func (d *demo) newMesh(i int) *gpu.Mesh {
	slot := i % d.cfg.WorkingSet
	x := float32(slot%gridColumns) + 0.5
	y := float32(slot/gridColumns) + 0.5
	model := mgl32.Translate3D(x, y, 0).Mul4(mgl32.Scale3D(0.9, 0.9, 1))
	pos, idx := gpu.Quad(model)
	return gpu.NewMesh(pos, idx, d.textures[i%len(d.textures)])
}

func (d *demo) run(maxFrames int) {
	for !d.mainWin.ShouldClose() {
		if maxFrames > 0 && d.frame >= maxFrames {
			break
		}
		d.tick()
	}
}

func (d *demo) tick() {
	profiling.ResetFrame()
	start := time.Now()
	interval := config.GetSweepInterval()

	if d.frame%interval == 0 {
		d.main.SetAllUnused()
		d.offscreen.SetAllUnused()
	}

	d.main.Do(d.renderMain)
	d.offscreen.Do(func() {
		d.renderOffscreen()
		if d.cfg.RetireEvery > 0 && d.frame > 0 && d.frame%d.cfg.RetireEvery == 0 {
			// The main context is not current here, so the retired
			// mesh's deletes queue until main's next sweep.
			d.retire()
		}
	})

	if d.frame%interval == interval-1 {
		d.main.UnrealizeUnused()
		d.offscreen.UnrealizeUnused()
	}

	glfw.PollEvents()
	d.frame++

	if elapsed := time.Since(start); elapsed > d.cfg.SlowFrame {
		d.log.Warn("slow frame",
			zap.Duration("elapsed", elapsed),
			zap.String("top", profiling.TopN(5)),
		)
	}
	d.limiter.Wait()
}

// workingSet returns the meshes drawn this frame.
func (d *demo) workingSet() []*gpu.Mesh {
	first := d.frame / rotateInterval
	set := make([]*gpu.Mesh, 0, d.cfg.WorkingSet)
	for i := 0; i < d.cfg.WorkingSet; i++ {
		set = append(set, d.meshes[(first+i)%len(d.meshes)])
	}
	return set
}

func (d *demo) renderMain() {
	w, h := d.mainWin.GetFramebufferSize()
	d.dev.ClearTarget(0, w, h, mgl32.Vec4{0.53, 0.81, 0.92, 1})

	rows := (d.cfg.WorkingSet + gridColumns - 1) / gridColumns
	proj := mgl32.Ortho2D(0, gridColumns, 0, float32(max(rows, 1)))
	d.program.Use()
	d.program.SetMatrix4("proj", &proj[0])
	d.program.SetInt("tex", 0)

	for _, m := range d.workingSet() {
		m.Realize(d.main, d.dev)
		m.SetUsed(true)
		d.dev.DrawMesh(d.vao, m)
	}
	d.mainWin.SwapBuffers()
}

func (d *demo) renderOffscreen() {
	if err := d.target.Realize(d.offscreen, d.dev); err != nil {
		d.log.Error("offscreen target", zap.Error(err))
		return
	}
	d.target.SetUsed(true)

	phase := float32(d.frame%120) / 120
	w, h := d.target.Size()
	d.dev.ClearTarget(d.target.ID(), w, h, mgl32.Vec4{phase, 0.2, 1 - phase, 1})
}

// retire replaces the oldest mesh with a fresh one.
func (d *demo) retire() {
	i := (d.frame / d.cfg.RetireEvery) % len(d.meshes)
	old := d.meshes[i]
	old.Unrealize()
	old.Destroy()
	d.meshes[i] = d.newMesh(i)

	d.log.Debug("retired mesh",
		zap.Int("slot", i),
		zap.Int("main_pending", d.main.Pending()),
	)
}

func (d *demo) destroyWindows() {
	if d.offWin != nil {
		d.offWin.Destroy()
	}
	if d.mainWin != nil {
		d.mainWin.Destroy()
	}
}

// close tears both contexts down: every realized resource is unrealized
// while its context is current, then the CPU-side objects are dropped.
func (d *demo) close() {
	d.main.Close()
	d.offscreen.Close()

	for _, m := range d.meshes {
		m.Destroy()
	}
	for _, t := range d.textures {
		t.Destroy()
	}
	d.target.Destroy()

	d.main.Do(func() {
		if d.program != nil {
			d.program.Delete()
		}
		if d.vao != 0 {
			gl.DeleteVertexArrays(1, &d.vao)
		}
	})

	for _, c := range []*resource.Context{d.main, d.offscreen} {
		s := c.Stats()
		d.log.Info("context stats",
			zap.Stringer("context", c),
			zap.Uint64("sweeps", s.Sweeps),
			zap.Uint64("immediate_deletes", s.ImmediateDeletes),
			zap.Uint64("deferred_deletes", s.DeferredDeletes),
		)
	}
	d.destroyWindows()
}
