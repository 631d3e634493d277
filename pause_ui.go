package main

import (
	"fmt"
	"image/color"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/motor"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// PauseMenu is the centered panel shown while the game is paused. The
// tuning label is refreshed every time the menu opens.
type PauseMenu struct {
	UI     *ebitenui.UI
	tuning *widget.Text
}

func NewPauseMenu(g *Game) *PauseMenu {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)
	tuning := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
		widget.TextOpts.WidgetOpts(centered),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(tuning)
	panel.AddChild(button("Resume", func() { g.paused = false }))
	panel.AddChild(button("Copy tuning", g.copyTuning))
	panel.AddChild(button("Reload tuning", func() { g.reload("player.yaml") }))
	panel.AddChild(button("Debug overlay", func() { g.debug = !g.debug }))
	panel.AddChild(button("Quit", func() { g.quit = true }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &PauseMenu{UI: &ebitenui.UI{Container: root}, tuning: tuning}
}

// Refresh shows cfg in the tuning label.
func (p *PauseMenu) Refresh(cfg motor.Config) {
	p.tuning.Label = fmt.Sprintf(
		"accel %.1f  decel %.1f  max %.1f  exp %.2f\njump %.1f  fall x%.1f  low x%.1f  coyote %.2fs",
		cfg.Acceleration, cfg.Deceleration, cfg.MaxSpeed, cfg.VelocityExponent,
		cfg.JumpForce, cfg.FallMultiplier, cfg.LowJumpMultiplier, cfg.CoyoteTime,
	)
}
