package client

import (
	"fmt"
	"github.com/benjmnxu/ngram/cmd/util"
	"github.com/benjmnxu/ngram/rpc/client"
	"github.com/benjmnxu/ngram/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strconv"
)

var (
	rpcArchive *client.RPCArchive

	// ClientCommands represents the client command group. Besides its subcommands it
	// accepts the positional form: client <server-address> <server-port> <action> <argument>
	ClientCommands = &cobra.Command{
		Use:   "client [server-address server-port {publish <path> | search <word> | retrieve <id>}]",
		Short: "Send a single request to an archive server",
		Long: `Send a single request to an archive server and print the response.
The server can be given positionally (client 127.0.0.1 7878 search hello) or with
the --address and --port flags of the subcommands (client search hello --port 7878).
The command exits with status 1 if the server replies with Failure or does not reply.`,
		Args: cobra.ArbitraryArgs,
		RunE: runPositional,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// assigned here since setupArchiveClient refers to ClientCommands
	ClientCommands.PersistentPreRunE = setupArchiveClient

	// Add common RPC flags to the client command
	util.SetupRPCClientFlags(ClientCommands)

	// Add subcommands
	ClientCommands.AddCommand(publishCmd)
	ClientCommands.AddCommand(searchCmd)
	ClientCommands.AddCommand(retrieveCmd)
	ClientCommands.AddCommand(perfTestCmd)
}

// positionalArgs is the parsed positional form of the client command
type positionalArgs struct {
	Address  string
	Port     int
	Action   string
	Argument string
}

// parsePositional parses <server-address> <server-port> <action> <argument>
func parsePositional(args []string) (*positionalArgs, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("expected <server-address> <server-port> <action> <argument>, got %d arguments", len(args))
	}

	port, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid server port %q: %w", args[1], err)
	}

	switch args[2] {
	case "publish", "search", "retrieve":
	default:
		return nil, fmt.Errorf("invalid action %q (expected one of: publish, search, retrieve)", args[2])
	}

	return &positionalArgs{
		Address:  args[0],
		Port:     int(port),
		Action:   args[2],
		Argument: args[3],
	}, nil
}

// setupArchiveClient initializes the archive client from the flags.
// The positional form overrides the server address in runPositional.
func setupArchiveClient(cmd *cobra.Command, args []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	if cmd == ClientCommands {
		if len(args) == 0 {
			return nil
		}
		parsed, err := parsePositional(args)
		if err != nil {
			return err
		}
		viper.Set("address", parsed.Address)
		viper.Set("port", parsed.Port)
	}

	config, err := util.GetClientConfig()
	if err != nil {
		return err
	}

	connector, err := util.GetClientConnector(config.Transport)
	if err != nil {
		return err
	}

	rpcArchive = client.NewRPCArchive(*config, connector)
	return nil
}

// runPositional executes the positional form of the client command
func runPositional(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	parsed, err := parsePositional(args)
	if err != nil {
		return err
	}

	req, err := buildRequest(parsed.Action, parsed.Argument)
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	return sendAndPrint(req)
}

// buildRequest creates the request of a client action
func buildRequest(action, argument string) (*common.Request, error) {
	switch action {
	case "publish":
		doc, err := readDocument(argument)
		if err != nil {
			return nil, err
		}
		return common.NewPublishRequest(doc), nil
	case "search":
		return common.NewSearchRequest(argument), nil
	case "retrieve":
		id, err := strconv.ParseUint(argument, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("id must be a number: %w", err)
		}
		return common.NewRetrieveRequest(id), nil
	default:
		return nil, fmt.Errorf("invalid action %q", action)
	}
}

// sendAndPrint sends the request, prints the response and turns a Failure into an error
func sendAndPrint(req *common.Request) error {
	resp, err := rpcArchive.Send(req)
	if err != nil {
		return err
	}
	fmt.Println(resp)
	if !resp.IsSuccess() {
		return client.ErrFailure
	}
	return nil
}
