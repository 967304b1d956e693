package users

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jlfs-dev/picshare/cmd/cli/config"
	"github.com/jlfs-dev/picshare/cmd/cli/output"
)

type userView struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// InitUsers registers the users command group on the root command.
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	usersCmd.AddCommand(listUsersCmd(), getUserCmd(), deleteUserCmd())
	rootCmd.AddCommand(usersCmd)
}

// ==========================
// LIST
// ==========================
func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			var users []userView
			if err := getJSON("/users", &users); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u.ID, u.Username, u.FullName, u.Email})
			}
			output.RenderTable([]string{"ID", "Username", "Full name", "Email"}, rows)
			return nil
		},
	}
}

// ==========================
// GET
// ==========================
func getUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			var u userView
			if err := getJSON(fmt.Sprintf("/users/%d", id), &u); err != nil {
				return err
			}

			output.RenderTable([]string{"ID", "Username", "Full name", "Email"},
				[][]interface{}{{u.ID, u.Username, u.FullName, u.Email}})
			return nil
		},
	}
}

// ==========================
// DELETE
// ==========================
func deleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			body, err := doAuthorized(http.MethodDelete, fmt.Sprintf("/users/%d", id))
			if err != nil {
				return err
			}
			fmt.Println(string(body))
			return nil
		},
	}
}

func getJSON(path string, out any) error {
	body, err := doAuthorized(http.MethodGet, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// doAuthorized sends a request with the stored bearer token and returns the body.
func doAuthorized(method, path string) ([]byte, error) {
	token, err := config.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("please sign in first")
	}

	req, err := http.NewRequest(method, config.APIURL()+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
