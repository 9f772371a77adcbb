//go:build !mobile

package utils

import "testing"

// TestIsMobile_Desktop 测试桌面端编译时 IsMobile() 的返回值
func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("GALLERY_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}

	t.Setenv("GALLERY_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should honour GALLERY_MOBILE_EMULATE=1")
	}
}
