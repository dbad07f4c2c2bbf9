package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

const defaultAPI = "http://localhost:8000"

type commandLine struct {
	out io.Writer
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  admin [-api URL] [-username NAME] COMMAND [ARGS]")
	_, _ = fmt.Fprintln(cli.out, "")
	_, _ = fmt.Fprintln(cli.out, "Commands:")
	_, _ = fmt.Fprintln(cli.out, "  stats                  - print dashboard statistics")
	_, _ = fmt.Fprintln(cli.out, "  feedback               - list submitted feedback, newest first")
	_, _ = fmt.Fprintln(cli.out, "  delete-feedback -id ID - delete a feedback message")
	_, _ = fmt.Fprintln(cli.out, "  delete-paper -id ID    - delete a question paper and its file")
	_, _ = fmt.Fprintln(cli.out, "  delete-video -id ID    - delete a video")
	_, _ = fmt.Fprintln(cli.out, "")
	_, _ = fmt.Fprintln(cli.out, "The admin password is prompted for.")
}

// deletePaths maps delete commands to the API collection they target.
var deletePaths = map[string]string{
	"delete-feedback": "/api/feedback/",
	"delete-paper":    "/api/question-papers/",
	"delete-video":    "/api/videos/",
}

func (cli *commandLine) run(args []string) error {
	global := flag.NewFlagSet("admin", flag.ContinueOnError)
	global.SetOutput(cli.out)
	apiURL := global.String("api", defaultAPI, "Base URL of the API.")
	username := global.String("username", "admin", "Admin username.")
	global.Usage = cli.printUsage

	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	if err := global.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		cli.printUsage()
		return errHelp
	}

	cmd := rest[0]
	var id int
	switch cmd {
	case "stats", "feedback":
	case "delete-feedback", "delete-paper", "delete-video":
		deleteCmd := flag.NewFlagSet(cmd, flag.ContinueOnError)
		deleteCmd.SetOutput(cli.out)
		deleteCmd.IntVar(&id, "id", 0, "The id of the record to delete.")
		if err := deleteCmd.Parse(rest[1:]); err != nil {
			if err == flag.ErrHelp {
				return errHelp
			}
			return err
		}
		if id < 1 {
			deleteCmd.Usage()
			return errHelp
		}
	default:
		cli.printUsage()
		return errHelp
	}

	_, _ = fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	_, _ = fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		cli.printUsage()
		return errHelp
	}

	client, err := newAPIClient(*apiURL)
	if err != nil {
		return err
	}
	if err = client.login(*username, string(pwd)); err != nil {
		return err
	}
	defer func() { _ = client.logout() }()

	switch cmd {
	case "stats":
		return cli.printStats(client)
	case "feedback":
		return cli.printFeedback(client)
	default:
		msg, err := client.remove(fmt.Sprintf("%s%d", deletePaths[cmd], id))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cli.out, msg)
		return nil
	}
}

func (cli *commandLine) printStats(client *apiClient) error {
	stats, err := client.stats()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Question papers:\t%d\n", stats.TotalPapers)
	_, _ = fmt.Fprintf(w, "Videos:\t%d\n", stats.TotalVideos)
	_, _ = fmt.Fprintf(w, "Feedback:\t%d\n", stats.TotalFeedback)
	_, _ = fmt.Fprintf(w, "Downloads:\t%d\n", stats.TotalDownloads)
	_, _ = fmt.Fprintf(w, "Views:\t%d\n", stats.TotalViews)
	return w.Flush()
}

func (cli *commandLine) printFeedback(client *apiClient) error {
	fbs, err := client.feedback()
	if err != nil {
		return err
	}
	if len(fbs) == 0 {
		_, _ = fmt.Fprintln(cli.out, "No feedback yet.")
		return nil
	}
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDATE\tFROM\tSUBJECT\tMESSAGE")
	for _, fb := range fbs {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s <%s>\t%s\t%s\n",
			fb.ID, fb.CreatedAt.Format("2006-01-02 15:04"), fb.Name, fb.Email, fb.Subject, oneLine(fb.Message, 60))
	}
	return w.Flush()
}

func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
