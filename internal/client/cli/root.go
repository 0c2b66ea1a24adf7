package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Username)
}

// Root runs the interactive command loop until EOF or "exit".
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to Filecove CLI (type 'help' for commands)")

	if err := a.client.Status(ctx); err != nil {
		log.Printf("Warning: server unreachable: %s", err.Error())
	}

	scanner := bufio.NewScanner(os.Stdin)
	a.runLoop(ctx, scanner)
}

func (a *App) runLoop(ctx context.Context, scanner *bufio.Scanner) {
	for {
		fmt.Printf("fcli %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: upload <path>..., (l)ist, download <id> [dir], rename <id> <name>, delete <id>, me, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "me":
			a.Me(ctx)
		case "upload":
			a.Upload(ctx, args)
		case "l", "list":
			a.List(ctx)
		case "download":
			id, dir := "", ""
			if len(args) > 0 {
				id = args[0]
			}
			if len(args) > 1 {
				dir = args[1]
			}
			a.Download(ctx, id, dir)
		case "rename":
			id, name := "", ""
			if len(args) > 0 {
				id = args[0]
			}
			if len(args) > 1 {
				name = strings.Join(args[1:], " ")
			}
			a.Rename(ctx, id, name)
		case "delete":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			a.Delete(ctx, id)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
