package renderer

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/dariandzirko/water-spider/engine/gpu"
)

// fakeContext is a GPU context without a device. AcquireFrame replays a scripted result.
type fakeContext struct {
	config gpu.SurfaceConfig

	acquires    int
	reconfigure [][2]int

	texture *wgpu.Texture
	status  gpu.AcquireStatus
	err     error
}

var _ gpu.Context = &fakeContext{}

func (c *fakeContext) Device() *wgpu.Device      { return nil }
func (c *fakeContext) Queue() *wgpu.Queue        { return nil }
func (c *fakeContext) Surface() *wgpu.Surface    { return nil }
func (c *fakeContext) Config() gpu.SurfaceConfig { return c.config }
func (c *fakeContext) Present()                  {}
func (c *fakeContext) Release()                  {}

func (c *fakeContext) Reconfigure(width, height int) bool {
	c.reconfigure = append(c.reconfigure, [2]int{width, height})
	next, ok := c.config.Resized(width, height)
	if ok {
		c.config = next
	}
	return ok
}

func (c *fakeContext) AcquireFrame() (*wgpu.Texture, gpu.AcquireStatus, error) {
	c.acquires++
	return c.texture, c.status, c.err
}

func TestBeginFrameAcquireFailures(t *testing.T) {
	timeoutErr := errors.New("surface timeout")
	tests := []struct {
		name       string
		ctx        *fakeContext
		wantStatus gpu.AcquireStatus
		wantErr    error
	}{
		{
			name:       "no texture without error",
			ctx:        &fakeContext{config: testConfig(), status: gpu.AcquireSuccess},
			wantStatus: gpu.AcquireOutdated,
			wantErr:    gpu.ErrNoSurfaceTexture,
		},
		{
			name:       "classified failure passes through",
			ctx:        &fakeContext{config: testConfig(), status: gpu.AcquireTimeout, err: timeoutErr},
			wantStatus: gpu.AcquireTimeout,
			wantErr:    timeoutErr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newWGPUFrameBackend(tt.ctx)
			status, err := b.BeginFrame(ClearColor)
			if status != tt.wantStatus {
				t.Errorf("status = %v, want %v", status, tt.wantStatus)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if b.frameSurface != nil || b.framePass != nil {
				t.Error("failed acquire left a frame open")
			}
		})
	}
}

func TestBeginFrameRejectsUnpresentedFrame(t *testing.T) {
	ctx := &fakeContext{config: testConfig(), status: gpu.AcquireSuccess}
	b := newWGPUFrameBackend(ctx)
	b.frameSurface = &wgpu.Texture{}

	status, err := b.BeginFrame(ClearColor)
	if status != gpu.AcquireSuccess || !errors.Is(err, ErrFrameInFlight) {
		t.Fatalf("BeginFrame = %v, %v; want success, ErrFrameInFlight", status, err)
	}
	if ctx.acquires != 0 {
		t.Errorf("acquired %d textures while a frame was still held", ctx.acquires)
	}
}

// TestRenderFrameMissingSurfaceTextureReconfigures drives the renderer through the GPU
// frame backend: an acquire with no error and no texture reconfigures at the last size.
func TestRenderFrameMissingSurfaceTextureReconfigures(t *testing.T) {
	ctx := &fakeContext{config: testConfig(), status: gpu.AcquireSuccess}
	r := newTestRenderer(&fakeBackend{})
	r.backend = newWGPUFrameBackend(ctx)

	outcome, err := r.RenderFrame()
	if err != nil || outcome != FrameReconfigured {
		t.Fatalf("RenderFrame = %v, %v; want reconfigured, nil", outcome, err)
	}
	if len(ctx.reconfigure) != 1 || ctx.reconfigure[0] != [2]int{1024, 604} {
		t.Errorf("reconfigure calls = %v, want one at 1024x604", ctx.reconfigure)
	}
}
