package serve

import (
	"context"
	"fmt"
	cmdUtil "github.com/benjmnxu/ngram/cmd/util"
	"github.com/benjmnxu/ngram/lib/store/lstore"
	"github.com/benjmnxu/ngram/rpc/common"
	"github.com/benjmnxu/ngram/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"os/signal"
	"strconv"
	"syscall"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "server [listen-port]",
		Aliases: []string{"serve"},
		Short:   "Start the archive server",
		Long:    `Start the archive server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is NGRAM_<flag> (e.g. NGRAM_WORKERS=32). The optional listen port argument takes precedence over --port.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "host"
	ServeCmd.PersistentFlags().String(key, common.DefaultHost, cmdUtil.WrapString("The address the server binds to (only for tcp)"))

	key = "port"
	ServeCmd.PersistentFlags().Int(key, common.DefaultPort, cmdUtil.WrapString("The port the server listens on (only for tcp)"))

	key = "socket-path"
	ServeCmd.PersistentFlags().String(key, cmdUtil.DefaultSocketPath, cmdUtil.WrapString("The socket path the server listens on (only for unix)"))

	key = "workers"
	ServeCmd.PersistentFlags().Int(key, common.DefaultWorkers, cmdUtil.WrapString("Number of workers processing requests"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, common.DefaultTimeoutSecond, cmdUtil.WrapString("Timeout in seconds for reading a request and writing a response (0 = no timeout)"))

	key = "max-frame-size"
	ServeCmd.PersistentFlags().Uint32(key, common.DefaultMaxFrameSize, cmdUtil.WrapString("The largest accepted request payload in bytes"))

	key = "compression"
	ServeCmd.PersistentFlags().String(key, "none", cmdUtil.WrapString("Compression of stored documents (none, zstd, lz4)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Address of the prometheus metrics endpoint, e.g. 127.0.0.1:9100 (empty = disabled)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	cmdUtil.SetupSocketFlags(ServeCmd)
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, args []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	port := viper.GetInt("port")
	if len(args) == 1 {
		p, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return fmt.Errorf("invalid listen port %q: %w", args[0], err)
		}
		port = int(p)
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Transport = viper.GetString("transport")
	serveCmdConfig.Workers = viper.GetInt("workers")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MaxFrameSize = viper.GetUint32("max-frame-size")
	serveCmdConfig.Compression = viper.GetString("compression")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.SocketConf, serveCmdConfig.TCPConf = cmdUtil.GetSocketConfig()

	endpoint, err := cmdUtil.Endpoint(serveCmdConfig.Transport, viper.GetString("host"), port, viper.GetString("socket-path"))
	if err != nil {
		return err
	}
	serveCmdConfig.Endpoint = endpoint

	if _, err := lstore.ParseCompression(serveCmdConfig.Compression); err != nil {
		return err
	}

	return serveCmdConfig.Validate()
}

// run starts the archive server and blocks until it was stopped by an interrupt
func run(cmd *cobra.Command, _ []string) error {
	if err := common.InitLoggers(serveCmdConfig.LogLevel); err != nil {
		return err
	}

	connector, err := cmdUtil.GetServerConnector(serveCmdConfig.Transport)
	if err != nil {
		return err
	}

	codec, err := lstore.ParseCompression(serveCmdConfig.Compression)
	if err != nil {
		return err
	}

	s, err := server.NewServer(*serveCmdConfig, connector, lstore.NewLocalArchive(codec))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// errors are reported by cobra, usage output would only hide them
	cmd.SilenceUsage = true
	return s.Run(ctx)
}
