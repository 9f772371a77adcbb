package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// GalleryPhase 画廊过渡状态机的阶段
type GalleryPhase int

const (
	// PhaseIdle 网格可交互，没有打开的面板
	PhaseIdle GalleryPhase = iota
	// PhaseOpeningMovers 网格退场、mover 级联进行中
	PhaseOpeningMovers
	// PhaseOpeningPanel 面板图片与文字正在揭示
	PhaseOpeningPanel
	// PhaseOpen 面板已打开，等待关闭
	PhaseOpen
	// PhaseClosing 面板淡出、网格恢复中
	PhaseClosing
)

// String 返回阶段名称（用于日志）
func (p GalleryPhase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseOpeningMovers:
		return "OpeningMovers"
	case PhaseOpeningPanel:
		return "OpeningPanel"
	case PhaseOpen:
		return "Open"
	case PhaseClosing:
		return "Closing"
	default:
		return fmt.Sprintf("GalleryPhase(%d)", int(p))
	}
}

var (
	// ErrTransitionInFlight 已有过渡在进行中
	ErrTransitionInFlight = errors.New("gallery transition already in flight")
	// ErrPanelNotOpen 面板未打开，无法关闭
	ErrPanelNotOpen = errors.New("gallery panel is not open")
	// ErrPanelAlreadyOpen 面板已打开，需先关闭才能选择其他网格项
	ErrPanelAlreadyOpen = errors.New("gallery panel is already open")
	// ErrUnexpectedPhase 阶段事件与当前阶段不匹配
	ErrUnexpectedPhase = errors.New("unexpected gallery phase")
)

// GalleryState 画廊的展示状态
//
// 只由过渡系统修改；展示层通过 IsAnimating / IsPanelOpen / Selected 读取。
// 每个阶段只能由一个"阶段完成"事件推进到下一个阶段：
//
//	Idle → OpeningMovers → OpeningPanel → Open → Closing → Idle
type GalleryState struct {
	phase    GalleryPhase
	selected string

	listeners []func(from, to GalleryPhase)
}

// NewGalleryState 创建处于 Idle 阶段的状态
func NewGalleryState() *GalleryState {
	return &GalleryState{phase: PhaseIdle}
}

// Phase 当前阶段
func (s *GalleryState) Phase() GalleryPhase {
	return s.phase
}

// IsAnimating 从点击到面板打开、从关闭请求到网格恢复期间为 true
func (s *GalleryState) IsAnimating() bool {
	switch s.phase {
	case PhaseOpeningMovers, PhaseOpeningPanel, PhaseClosing:
		return true
	default:
		return false
	}
}

// IsPanelOpen 面板完全打开后为 true；关闭动画期间仍为 true，直到网格恢复
func (s *GalleryState) IsPanelOpen() bool {
	return s.phase == PhaseOpen || s.phase == PhaseClosing
}

// Selected 当前选中的网格项 id，没有选中时返回 false
func (s *GalleryState) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// OnPhaseChange 注册阶段变化监听器
func (s *GalleryState) OnPhaseChange(fn func(from, to GalleryPhase)) {
	s.listeners = append(s.listeners, fn)
}

// BeginOpen Idle → OpeningMovers，记录选中项
func (s *GalleryState) BeginOpen(itemID string) error {
	switch s.phase {
	case PhaseIdle:
	case PhaseOpen:
		return fmt.Errorf("select %s: %w", itemID, ErrPanelAlreadyOpen)
	default:
		return fmt.Errorf("select %s in phase %s: %w", itemID, s.phase, ErrTransitionInFlight)
	}
	s.selected = itemID
	s.transition(PhaseOpeningMovers)
	return nil
}

// PanelRevealStarted OpeningMovers → OpeningPanel
func (s *GalleryState) PanelRevealStarted() error {
	return s.advance(PhaseOpeningMovers, PhaseOpeningPanel)
}

// CompleteOpen OpeningPanel → Open
//
// 级联时长为 0 时面板揭示与 mover 阶段同时开始，允许直接从 OpeningMovers 完成。
func (s *GalleryState) CompleteOpen() error {
	if s.phase == PhaseOpeningMovers {
		s.transition(PhaseOpeningPanel)
	}
	return s.advance(PhaseOpeningPanel, PhaseOpen)
}

// BeginClose Open → Closing
func (s *GalleryState) BeginClose() error {
	if s.phase != PhaseOpen {
		if s.IsAnimating() {
			return fmt.Errorf("close in phase %s: %w", s.phase, ErrTransitionInFlight)
		}
		return fmt.Errorf("close in phase %s: %w", s.phase, ErrPanelNotOpen)
	}
	s.transition(PhaseClosing)
	return nil
}

// CompleteClose Closing → Idle，清空选中项
func (s *GalleryState) CompleteClose() error {
	if err := s.advance(PhaseClosing, PhaseIdle); err != nil {
		return err
	}
	s.selected = ""
	return nil
}

// Reset 强制回到初始状态（组件销毁时使用）
func (s *GalleryState) Reset() {
	s.selected = ""
	if s.phase != PhaseIdle {
		s.transition(PhaseIdle)
	}
}

func (s *GalleryState) advance(from, to GalleryPhase) error {
	if s.phase != from {
		return fmt.Errorf("%s → %s in phase %s: %w", from, to, s.phase, ErrUnexpectedPhase)
	}
	s.transition(to)
	return nil
}

func (s *GalleryState) transition(to GalleryPhase) {
	from := s.phase
	s.phase = to
	log.Debugf("[GalleryState] State: %s → %s (selected=%q)", from, to, s.selected)
	for _, fn := range s.listeners {
		fn(from, to)
	}
}
