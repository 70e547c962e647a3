// scanfile runs the extraction engine over local text files without a
// server or database: one file per input, email bodies with -email,
// attachment texts with -doc, merged output as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"billscan/internal/dedupe"
	"billscan/internal/domain"
	"billscan/internal/extract"
	"billscan/internal/fieldmap"
)

type fileList []string

func (f *fileList) String() string { return strings.Join(*f, ",") }
func (f *fileList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	var emails, docs fileList
	messageID := flag.String("message", "local", "message ID to group inputs under")
	trusted := flag.Bool("trusted", false, "treat email inputs as trusted-sender")
	flag.Var(&emails, "email", "email body text file (repeatable)")
	flag.Var(&docs, "doc", "attachment text file (repeatable)")
	flag.Parse()

	if len(emails) == 0 && len(docs) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: scanfile [-message ID] [-trusted] -email body.txt -doc attachment.txt")
		os.Exit(1)
	}

	ctx := context.Background()
	orchestrator := extract.NewDefaultOrchestrator(extract.DefaultPolicy())
	deduper := dedupe.NewEngine(fieldmap.Default())

	var candidates []domain.CandidateBill
	for _, path := range emails {
		res, err := orchestrator.ExtractFromEmail(ctx, domain.EmailContext{
			MessageID:     *messageID,
			BodyText:      readFile(path),
			TrustedSource: *trusted,
		})
		if err != nil {
			log.Printf("scanfile: %s: %v", path, err)
			continue
		}
		candidates = append(candidates, res.Bills...)
	}
	for _, path := range docs {
		res, err := orchestrator.ExtractFromDocument(ctx, domain.DocumentContext{
			MessageID:    *messageID,
			AttachmentID: filepath.Base(path),
			FileName:     filepath.Base(path),
			RawText:      readFile(path),
		})
		if err != nil {
			log.Printf("scanfile: %s: %v", path, err)
			continue
		}
		candidates = append(candidates, res.Bills...)
	}

	final := deduper.Deduplicate(candidates)
	out, err := json.MarshalIndent(final, "", "  ")
	if err != nil {
		log.Fatalf("scanfile: encoding output: %v", err)
	}
	fmt.Println(string(out))
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("scanfile: reading %s: %v", path, err)
	}
	return string(data)
}
