//go:build !mobile

package utils

import "os"

// IsMobile 桌面端编译时返回 false
// 设置 GALLERY_MOBILE_EMULATE=1 可在桌面上模拟移动端行为（窗口尺寸由系统决定、无快捷键提示）
func IsMobile() bool {
	return os.Getenv("GALLERY_MOBILE_EMULATE") == "1"
}
