package cmd

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/unframework/lightbake/renderer"
	"github.com/urfave/cli"
)

func init() {
	// GL and glfw calls must stay on the main thread
	runtime.LockOSThread()
}

// Bake the demo scene while displaying the composited lightmap in an
// opengl window refreshing as the bake progresses.
func ViewLightmap(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := optionsFromContext(ctx)

	items, lights, specs := demoScene()
	b, err := renderer.New(items, lights, specs, opts)
	if err != nil {
		return err
	}
	defer b.Close()

	v := &lightmapView{
		baker: b,
		scale: int32(ctx.Int("scale")),
	}
	if v.scale <= 0 {
		v.scale = 4
	}

	if err = v.initGL(); err != nil {
		v.close()
		return err
	}
	defer v.close()

	return v.run()
}

// An interactive opengl-based lightmap viewer.
type lightmapView struct {
	baker *renderer.Baker
	scale int32

	// opengl handles
	window    *glfw.Window
	fbTexture uint32
	texFbo    uint32

	uploadedVersion uint64
}

func (v *lightmapView) initGL() error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	out := v.baker.Output()
	texW := int32(out.Width)
	texH := int32(out.Height)

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	v.window, err = glfw.CreateWindow(int(texW*v.scale), int(texH*v.scale), "lightbake", nil, nil)
	if err != nil {
		return fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	v.window.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %s", err.Error())
	}

	// Setup texture for lightmap data
	gl.GenTextures(1, &v.fbTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, v.fbTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, texW, texH, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	// Attach texture to FBO
	gl.GenFramebuffers(1, &v.texFbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, v.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, v.fbTexture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	v.window.SetKeyCallback(v.onKeyEvent)

	return nil
}

func (v *lightmapView) run() error {
	out := v.baker.Output()
	texW := int32(out.Width)
	texH := int32(out.Height)
	winW, winH := v.window.GetFramebufferSize()

	for !v.window.ShouldClose() {
		glfw.PollEvents()

		if err := v.baker.Advance(0); err != nil {
			return err
		}

		// Re-upload only when the bake actually touched the output
		if out.Version() != v.uploadedVersion {
			pix := out.RGBA8()
			gl.BindTexture(gl.TEXTURE_2D, v.fbTexture)
			gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, texW, texH, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
			v.uploadedVersion = out.Version()
		}

		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, v.texFbo)
		gl.BlitFramebuffer(0, 0, texW, texH, 0, 0, int32(winW), int32(winH), gl.COLOR_BUFFER_BIT, gl.NEAREST)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

		v.window.SwapBuffers()
	}

	return nil
}

func (v *lightmapView) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

func (v *lightmapView) close() {
	if v.window != nil {
		v.window.Destroy()
		v.window = nil
	}
	glfw.Terminate()
}
