package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"spmtutor/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var Version = "dev"

var (
	configDir string
	envFile   string
)

var rootCmd = &cobra.Command{
	Use:          "spm-tutor",
	Short:        "SPM 英语写作练习后端",
	Version:      Version,
	SilenceUsage: true,
	// 不带子命令时直接启动服务
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "配置文件目录")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "启动前加载的环境变量文件")
	rootCmd.Flags().BoolVar(&forceMigrate, "migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")

	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig 先加载 .env（不存在时忽略），再由 viper 读取配置
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "打印版本号",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}
