package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// ToastType indicates the severity of a notification
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastWarning
	ToastError
)

const (
	toastDuration      = 3 * time.Second
	toastErrorDuration = 6 * time.Second // long enough to read a path
	maxToasts          = 3
)

// Toast is one notification.
type Toast struct {
	Message   string
	Type      ToastType
	ExpiresAt time.Time
}

// toastStack keeps the newest notifications, oldest first. Exports can
// finish in quick succession, so one toast does not replace another.
type toastStack struct {
	mu    sync.Mutex
	items []Toast
}

func (s *toastStack) push(t Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Identical consecutive messages only extend the visible one
	if n := len(s.items); n > 0 && s.items[n-1].Message == t.Message && s.items[n-1].Type == t.Type {
		s.items[n-1].ExpiresAt = t.ExpiresAt
		return
	}
	s.items = append(s.items, t)
	if len(s.items) > maxToasts {
		s.items = s.items[len(s.items)-maxToasts:]
	}
}

// live drops expired toasts and returns a copy of the rest with the
// earliest expiry among them.
func (s *toastStack) live(now time.Time) ([]Toast, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	var next time.Time
	for _, t := range s.items {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
			if next.IsZero() || t.ExpiresAt.Before(next) {
				next = t.ExpiresAt
			}
		}
	}
	s.items = kept
	return append([]Toast(nil), kept...), next
}

// ShowToast displays a notification that dismisses itself.
func (r *Renderer) ShowToast(message string, toastType ToastType) {
	d := toastDuration
	if toastType == ToastError {
		d = toastErrorDuration
	}
	r.toasts.push(Toast{Message: message, Type: toastType, ExpiresAt: time.Now().Add(d)})
}

func (r *Renderer) ShowError(message string)   { r.ShowToast(message, ToastError) }
func (r *Renderer) ShowWarning(message string) { r.ShowToast(message, ToastWarning) }
func (r *Renderer) ShowSuccess(message string) { r.ShowToast(message, ToastSuccess) }

// Toasts returns the notifications currently on screen, oldest first.
func (r *Renderer) Toasts() []Toast {
	items, _ := r.toasts.live(time.Now())
	return items
}

func toastColors(t ToastType) (bg, fg color.NRGBA) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	switch t {
	case ToastError:
		return color.NRGBA{R: 200, G: 50, B: 50, A: 240}, white
	case ToastWarning:
		return color.NRGBA{R: 220, G: 160, B: 40, A: 240}, color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	case ToastSuccess:
		return color.NRGBA{R: 50, G: 160, B: 80, A: 240}, white
	default:
		return color.NRGBA{R: 60, G: 60, B: 60, A: 240}, white
	}
}

// layoutToasts stacks the live notifications at the bottom of the window,
// newest lowest, above the editor overlay.
func (r *Renderer) layoutToasts(gtx layout.Context) layout.Dimensions {
	items, next := r.toasts.live(time.Now())
	if len(items) == 0 {
		return layout.Dimensions{}
	}
	gtx.Execute(op.InvalidateCmd{At: next})

	children := make([]layout.FlexChild, 0, len(items))
	for _, t := range items {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return r.layoutToast(gtx, t)
			})
		}))
	}
	return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Bottom: unit.Dp(20), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = image.Point{}
			return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx, children...)
		})
	})
}

func (r *Renderer) layoutToast(gtx layout.Context, t Toast) layout.Dimensions {
	gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(560)))
	gtx.Constraints.Min = image.Point{}
	bg, fg := toastColors(t.Type)

	// Measure the text so the background fits it
	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		label := material.Body1(r.Theme, t.Message)
		label.Color = fg
		return label.Layout(gtx)
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(8))
	rect := image.Rectangle{Max: dims.Size}
	paint.FillShape(gtx.Ops, colShadow, clip.UniformRRect(rect.Add(image.Pt(0, gtx.Dp(2))), rr).Op(gtx.Ops))
	paint.FillShape(gtx.Ops, bg, clip.UniformRRect(rect, rr).Op(gtx.Ops))
	call.Add(gtx.Ops)
	return dims
}
