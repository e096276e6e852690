package repository

import "errors"

var (
	// ErrStaleStep 条件更新未命中：step 已被其他请求推进
	ErrStaleStep = errors.New("session step changed concurrently")
	// ErrNoPendingResponse 当前步骤没有待作答的内容（生成失败后未重新 start）
	ErrNoPendingResponse = errors.New("no pending response for current step")
	// ErrStaleVersion 语法练习状态版本号不匹配
	ErrStaleVersion = errors.New("grammar state version changed concurrently")
)
