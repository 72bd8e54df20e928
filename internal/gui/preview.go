// Package gui provides an optional preview window for inspecting a job's
// result next to its source, with the curve visualization alongside.
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	AppID = "com.imageprocessing.match-histogram"

	imageDisplayWidth  = 512
	imageDisplayHeight = 384
	curveDisplaySize   = 256
)

// Preview is a single display-only window: source and result side by side,
// curve rendering underneath when one is set.
type Preview struct {
	fyneApp fyne.App
	window  fyne.Window

	sourceImage *canvas.Image
	resultImage *canvas.Image
	curveImage  *canvas.Image
}

func NewPreview(title string) *Preview {
	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(title)

	preview := &Preview{
		fyneApp: fyneApp,
		window:  window,
	}
	preview.setupLayout()

	return preview
}

func (p *Preview) setupLayout() {
	p.sourceImage = canvas.NewImageFromImage(nil)
	p.sourceImage.FillMode = canvas.ImageFillContain
	p.sourceImage.SetMinSize(fyne.NewSize(imageDisplayWidth, imageDisplayHeight))

	p.resultImage = canvas.NewImageFromImage(nil)
	p.resultImage.FillMode = canvas.ImageFillContain
	p.resultImage.SetMinSize(fyne.NewSize(imageDisplayWidth, imageDisplayHeight))

	p.curveImage = canvas.NewImageFromImage(nil)
	p.curveImage.FillMode = canvas.ImageFillContain
	p.curveImage.SetMinSize(fyne.NewSize(curveDisplaySize, curveDisplaySize))
	p.curveImage.Hide()

	sourceContainer := container.NewVBox(
		widget.NewRichTextFromMarkdown("**Source**"),
		p.sourceImage,
	)
	resultContainer := container.NewVBox(
		widget.NewRichTextFromMarkdown("**Result**"),
		p.resultImage,
	)

	imageSplit := container.NewHSplit(sourceContainer, resultContainer)
	imageSplit.SetOffset(0.5)

	content := container.NewVBox(
		imageSplit,
		container.NewCenter(p.curveImage),
	)

	p.window.SetContent(content)
	p.window.CenterOnScreen()
	p.window.SetMaster()
}

func (p *Preview) SetSource(img image.Image) {
	p.sourceImage.Image = img
	p.sourceImage.Refresh()
}

func (p *Preview) SetResult(img image.Image) {
	p.resultImage.Image = img
	p.resultImage.Refresh()
}

// SetCurveView shows the 256x256 curve rendering below the image panes.
func (p *Preview) SetCurveView(img image.Image) {
	p.curveImage.Image = img
	p.curveImage.Show()
	p.curveImage.Refresh()
}

// Run shows the window and blocks until it is closed.
func (p *Preview) Run() {
	p.window.ShowAndRun()
}
