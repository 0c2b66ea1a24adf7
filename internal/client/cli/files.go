package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Upload sends the files at the given paths to the server and prints the
// per-file outcomes.
func (a *App) Upload(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		fmt.Println("Usage: upload <path> [path ...]")
		return nil
	}

	results, err := a.client.Upload(ctx, paths)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("%s: %s\n", r.Name, r.Error)
		} else {
			fmt.Printf("%s: uploaded, id %s\n", r.File.Name, r.File.ID)
		}
	}
	return nil
}

// List prints the user's files, newest first.
func (a *App) List(ctx context.Context) error {
	files, err := a.client.List(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(files) == 0 {
		fmt.Println("No files yet.")
		return nil
	}

	for _, f := range files {
		fmt.Printf("%s  %8d  %s  %s\n", f.ID, f.Size, f.UploadedAt.Format("2006-01-02 15:04"), f.Name)
	}
	return nil
}

// Download fetches a file into destDir ("." when empty).
func (a *App) Download(ctx context.Context, id, destDir string) error {
	if id == "" {
		fmt.Println("Usage: download <id> [dir]")
		return nil
	}
	if destDir == "" {
		destDir = "."
	}

	dest, err := a.client.Download(ctx, id, destDir)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Saved to %s\n", dest)
	return nil
}

// Rename changes a file's name.
func (a *App) Rename(ctx context.Context, id string, name string) error {
	if id == "" || strings.TrimSpace(name) == "" {
		fmt.Println("Usage: rename <id> <new name>")
		return nil
	}

	f, err := a.client.Rename(ctx, id, name)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Renamed to %s\n", f.Name)
	return nil
}

// Delete removes a file.
func (a *App) Delete(ctx context.Context, id string) error {
	if id == "" {
		fmt.Println("Usage: delete <id>")
		return nil
	}

	if err := a.client.Delete(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("Deleted.")
	return nil
}
