package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"littlelibrary/internal/book"
	"littlelibrary/internal/catalog"
	"littlelibrary/internal/film"
	"littlelibrary/internal/lightnovel"
	"littlelibrary/internal/manga"
	"littlelibrary/pkg/database"
)

func main() {
	outDir := flag.String("out", "data/export", "output directory for CSV files")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.MustOpen(ctx, database.DefaultConfig())
	defer db.Client().Disconnect(context.Background())

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	if err := exportCatalog(ctx, catalog.NewRepo(db), filepath.Join(*outDir, "catalog.csv")); err != nil {
		log.Fatalf("export catalog failed: %v", err)
	}
	if err := exportFilms(ctx, film.NewRepo(db), filepath.Join(*outDir, "films.csv")); err != nil {
		log.Fatalf("export films failed: %v", err)
	}
	if err := exportManga(ctx, manga.NewRepo(db), filepath.Join(*outDir, "manga.csv")); err != nil {
		log.Fatalf("export manga failed: %v", err)
	}
	if err := exportLightNovels(ctx, lightnovel.NewRepo(db), filepath.Join(*outDir, "light_novels.csv")); err != nil {
		log.Fatalf("export light novels failed: %v", err)
	}
	if err := exportBooks(ctx, book.NewRepo(db), filepath.Join(*outDir, "books.csv")); err != nil {
		log.Fatalf("export books failed: %v", err)
	}

	log.Printf("exported catalog to %s", *outDir)
}

func writeCSV(outPath string, header []string, rows [][]string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func exportCatalog(ctx context.Context, repo *catalog.Repo, outPath string) error {
	items, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ID, it.Title, it.TitleSlug, string(it.CollectionType),
			it.ImagePath, it.CreatedAt.Format(time.RFC3339), it.UpdatedAt.Format(time.RFC3339),
		})
	}
	return writeCSV(outPath, []string{"id", "title", "title_slug", "collection_type", "image_path", "created_at", "updated_at"}, rows)
}

func exportFilms(ctx context.Context, repo *film.Repo, outPath string) error {
	items, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(items))
	for _, f := range items {
		rows = append(rows, []string{
			f.ID, f.Title, f.TitleSlug, f.Director, string(f.Format),
			strconv.FormatBool(f.IsWatched), formatDate(f.ReleaseDate),
		})
	}
	return writeCSV(outPath, []string{"id", "title", "title_slug", "director", "format", "is_watched", "release_date"}, rows)
}

func exportManga(ctx context.Context, repo *manga.Repo, outPath string) error {
	items, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		rows = append(rows, []string{
			m.ID, m.Title, m.TitleSlug, m.Author, m.Illustrator, strconv.Itoa(m.Volume),
			strconv.FormatBool(m.IsDigital), strconv.FormatBool(m.IsRead), formatDate(m.PublishDate),
		})
	}
	return writeCSV(outPath, []string{"id", "title", "title_slug", "author", "illustrator", "volume", "is_digital", "is_read", "publish_date"}, rows)
}

func exportLightNovels(ctx context.Context, repo *lightnovel.Repo, outPath string) error {
	items, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(items))
	for _, n := range items {
		rows = append(rows, []string{
			n.ID, n.Title, n.TitleSlug, n.Author, n.Illustrator, n.Volume,
			strconv.FormatBool(n.IsDigital), strconv.FormatBool(n.IsRead), formatDate(n.PublishDate),
		})
	}
	return writeCSV(outPath, []string{"id", "title", "title_slug", "author", "illustrator", "volume", "is_digital", "is_read", "publish_date"}, rows)
}

func exportBooks(ctx context.Context, repo *book.Repo, outPath string) error {
	items, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(items))
	for _, b := range items {
		rows = append(rows, []string{
			b.ID, b.Title, b.TitleSlug, b.Author,
			strconv.FormatBool(b.IsDigital), strconv.FormatBool(b.IsRead), formatDate(b.PublishDate),
		})
	}
	return writeCSV(outPath, []string{"id", "title", "title_slug", "author", "is_digital", "is_read", "publish_date"}, rows)
}
