package util

import (
	"fmt"
	"github.com/benjmnxu/ngram/rpc/common"
	"github.com/benjmnxu/ngram/rpc/transport"
	"github.com/benjmnxu/ngram/rpc/transport/tcp"
	"github.com/benjmnxu/ngram/rpc/transport/unix"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"net"
	"strconv"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables (e.g. NGRAM_PORT)
	EnvPrefix = "ngram"

	// DefaultSocketPath is used by the unix transport if no socket path is given
	DefaultSocketPath = "/tmp/ngram.sock"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig loads .env files and makes every flag readable from NGRAM_<FLAG> environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// SetupSocketFlags adds the socket tuning flags shared by server and client
func SetupSocketFlags(cmd *cobra.Command) {
	key := "write-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("The size of the socket write buffer in KB (0 = os default)"))

	key = "read-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("The size of the socket read buffer in KB (0 = os default)"))

	key = "tcp-nodelay"
	cmd.PersistentFlags().Bool(key, true, WrapString("Whether to enable TCP_NODELAY (only for tcp)"))

	key = "tcp-keepalive"
	cmd.PersistentFlags().Int(key, 0, WrapString("The keepalive interval in seconds (0 = disabled, only for tcp)"))

	key = "tcp-linger"
	cmd.PersistentFlags().Int(key, -1, WrapString("The linger time in seconds (-1 = os default, only for tcp)"))
}

// SetupRPCClientFlags adds the connection flags of the client commands
func SetupRPCClientFlags(cmd *cobra.Command) {
	key := "address"
	cmd.PersistentFlags().String(key, common.DefaultHost, WrapString("The address of the archive server"))

	key = "port"
	cmd.PersistentFlags().Int(key, common.DefaultPort, WrapString("The port of the archive server"))

	key = "socket-path"
	cmd.PersistentFlags().String(key, DefaultSocketPath, WrapString("The socket path of the archive server (only for the unix transport)"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds for connecting, sending and receiving"))

	key = "max-frame-size"
	cmd.PersistentFlags().Uint32(key, common.DefaultMaxFrameSize, WrapString("The largest accepted response payload in bytes"))

	SetupSocketFlags(cmd)
}

// Endpoint builds the endpoint of a transport: host:port for tcp, the socket path for unix
func Endpoint(transportName, host string, port int, socketPath string) (string, error) {
	switch transportName {
	case "tcp":
		if port < 0 || port > 65535 {
			return "", fmt.Errorf("invalid port %d", port)
		}
		return net.JoinHostPort(host, strconv.Itoa(port)), nil
	case "unix":
		if socketPath == "" {
			return "", fmt.Errorf("no socket path given")
		}
		return socketPath, nil
	default:
		return "", fmt.Errorf("invalid transport %s (expected one of: tcp, unix)", transportName)
	}
}

// GetSocketConfig reads the socket flags from viper
func GetSocketConfig() (common.SocketConf, common.TCPConf) {
	socketConf := common.SocketConf{
		WriteBufferSize: viper.GetInt("write-buffer") * 1024,
		ReadBufferSize:  viper.GetInt("read-buffer") * 1024,
	}
	tcpConf := common.TCPConf{
		TCPNoDelay:      viper.GetBool("tcp-nodelay"),
		TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
		TCPLingerSec:    viper.GetInt("tcp-linger"),
	}
	return socketConf, tcpConf
}

// GetClientConfig reads the client configuration from viper
func GetClientConfig() (*common.ClientConfig, error) {
	conf := common.DefaultClientConfig()
	conf.Transport = viper.GetString("transport")
	conf.TimeoutSecond = viper.GetInt("timeout")
	conf.MaxFrameSize = viper.GetUint32("max-frame-size")
	conf.SocketConf, conf.TCPConf = GetSocketConfig()

	endpoint, err := Endpoint(conf.Transport, viper.GetString("address"), viper.GetInt("port"), viper.GetString("socket-path"))
	if err != nil {
		return nil, err
	}
	conf.Endpoint = endpoint

	return &conf, nil
}

// GetClientConnector creates the client connector of a transport
func GetClientConnector(transportName string) (transport.IClientConnector, error) {
	switch transportName {
	case "tcp":
		return tcp.NewTCPClientConnector(), nil
	case "unix":
		return unix.NewUnixClientConnector(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", transportName)
	}
}

// GetServerConnector creates the server connector of a transport
func GetServerConnector(transportName string) (transport.IServerConnector, error) {
	switch transportName {
	case "tcp":
		return tcp.NewTCPServerConnector(), nil
	case "unix":
		return unix.NewUnixServerConnector(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", transportName)
	}
}
