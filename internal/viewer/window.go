package viewer

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SceneView is a widget showing a rendered scene. Drag to rotate, scroll
// to zoom.
type SceneView struct {
	widget.BaseWidget
	scene  *Scene
	camera *Camera
	image  *canvas.Image
}

// NewSceneView creates the widget for a scene
func NewSceneView(s *Scene) *SceneView {
	v := &SceneView{
		scene:  s,
		camera: NewCamera(s.Bounds),
		image:  canvas.NewImageFromImage(nil),
	}
	v.image.FillMode = canvas.ImageFillStretch
	v.image.SetMinSize(fyne.NewSize(400, 400))
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer creates the renderer for the widget
func (v *SceneView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.image)
}

// Resize re-renders at the new size
func (v *SceneView) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)
	v.redraw()
}

func (v *SceneView) redraw() {
	size := v.Size()
	if size.Width < 1 || size.Height < 1 {
		return
	}
	v.image.Image = Render(v.scene, v.camera, RenderOptions{
		Width:      int(size.Width),
		Height:     int(size.Height),
		ShowBounds: true,
	})
	v.image.Refresh()
}

// Dragged handles mouse drag events for rotation
func (v *SceneView) Dragged(event *fyne.DragEvent) {
	v.camera.Rotate(float64(event.Dragged.DY)*0.01, float64(-event.Dragged.DX)*0.01)
	v.redraw()
}

// DragEnd handles the end of a drag event
func (v *SceneView) DragEnd() {}

// Scrolled handles scroll events for zooming
func (v *SceneView) Scrolled(event *fyne.ScrollEvent) {
	v.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	v.redraw()
}

// Show opens a window for the scene and blocks until it is closed
func Show(s *Scene, width, height int) {
	a := app.New()
	title := "gosurf"
	if s.Title != "" {
		title = "gosurf - " + s.Title
	}
	w := a.NewWindow(title)

	status := widget.NewLabel(statusText(s))
	w.SetContent(container.NewBorder(nil, status, nil, nil, NewSceneView(s)))

	w.Resize(fyne.NewSize(float32(width), float32(height)))
	w.ShowAndRun()
}
