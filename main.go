// @title SPM Tutor 后端 API
// @version 1.0
// @description SPM 英语写作练习后端：每日写作、词汇、语法填空、周检查点与 AI 导师。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import "spmtutor/cmd"

func main() {
	cmd.Execute()
}
