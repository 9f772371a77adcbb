//go:build !mobile

// Package mobile 是 gomobile/ebitenmobile 的绑定入口。
//
// 桌面构建只编译本文件；真正的入口在 mobile.go 中，需要 -tags mobile。
package mobile

// Dummy 让桌面构建下的 mobile 包仍然非空，可被 go vet 和 go test ./... 覆盖
func Dummy() {}
