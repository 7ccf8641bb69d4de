package chat_test

import (
	"bytes"
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mediassistco/mediassist/pkg/chat"
	"github.com/mediassistco/mediassist/pkg/logger"
	"github.com/mediassistco/mediassist/pkg/prompt"
	"github.com/mediassistco/mediassist/pkg/search"
)

var _ = Describe("Orchestrator", func() {
	var (
		ctx  context.Context
		sess *chat.Session
	)

	BeforeEach(func() {
		ctx = context.Background()
		sess = chat.NewSession()
	})

	Context("with search disabled", func() {
		It("answers from model knowledge and never calls the searcher", func() {
			generator := &stubGenerator{reply: "Common causes include stress and hormonal changes."}
			searcher := &stubSearcher{}
			orch := chat.NewOrchestrator(generator, searcher, logger.Nop())

			reply := orch.HandleTurn(ctx, sess, chat.Config{SearchEnabled: false}, "What causes a migraine?")

			Expect(reply).To(Equal("Common causes include stress and hormonal changes."))
			Expect(searcher.calls).To(BeZero())

			Expect(generator.prompts).To(HaveLen(1))
			Expect(generator.prompts[0]).To(ContainSubstring("What causes a migraine?"))
			Expect(generator.prompts[0]).NotTo(ContainSubstring("Medical Search Results"))

			display := sess.Display()
			Expect(display).To(HaveLen(3))
			Expect(display[2].Text).To(Equal(reply))
			Expect(sess.ModelContext()).To(HaveLen(2))
		})
	})

	Context("with search enabled", func() {
		It("feeds formatted results into the prompt", func() {
			generator := &stubGenerator{reply: "According to the Mayo Clinic, migraines have many triggers."}
			searcher := &stubSearcher{result: search.Result{
				Organic: []search.OrganicEntry{
					{Title: "Migraine - Mayo Clinic", Link: "https://mayoclinic.org", Snippet: "Overview."},
				},
			}}
			orch := chat.NewOrchestrator(generator, searcher, logger.Nop())

			reply := orch.HandleTurn(ctx, sess, chat.Config{SearchEnabled: true}, "What causes a migraine?")

			Expect(reply).NotTo(BeEmpty())
			Expect(searcher.calls).To(Equal(1))

			Expect(generator.prompts).To(HaveLen(1))
			Expect(generator.prompts[0]).To(ContainSubstring("Medical Search Results"))
			Expect(generator.prompts[0]).To(ContainSubstring("1. Migraine - Mayo Clinic"))
		})

		It("keeps the search section when the search finds nothing", func() {
			generator := &stubGenerator{reply: "Nothing current came up, but generally speaking..."}
			searcher := &stubSearcher{result: search.Result{}}
			orch := chat.NewOrchestrator(generator, searcher, logger.Nop())

			orch.HandleTurn(ctx, sess, chat.Config{SearchEnabled: true}, "What causes a migraine?")

			Expect(searcher.calls).To(Equal(1))
			Expect(generator.prompts[0]).To(ContainSubstring("Medical Search Results"))
			Expect(generator.prompts[0]).To(ContainSubstring("Always cite the sources"))
		})

		It("continues the turn when the search fails", func() {
			generator := &stubGenerator{reply: "I could not retrieve live results, but in general..."}
			searcher := &stubSearcher{result: search.Result{Error: "connection refused"}}
			orch := chat.NewOrchestrator(generator, searcher, logger.Nop())

			reply := orch.HandleTurn(ctx, sess, chat.Config{SearchEnabled: true}, "What causes a migraine?")

			Expect(reply).To(Equal(generator.reply))
			Expect(generator.prompts[0]).To(ContainSubstring("Error performing search: connection refused"))
			Expect(sess.ModelContext()).To(HaveLen(2))
		})

		It("skips search when no searcher is configured", func() {
			generator := &stubGenerator{reply: "ok"}
			orch := chat.NewOrchestrator(generator, nil, logger.Nop())

			orch.HandleTurn(ctx, sess, chat.Config{SearchEnabled: true}, "What causes a migraine?")

			Expect(generator.prompts[0]).NotTo(ContainSubstring("Medical Search Results"))
		})
	})

	Context("when the LLM fails", func() {
		It("replaces the reply with the error string and leaves the model context intact", func() {
			orch := chat.NewOrchestrator(
				&stubGenerator{reply: "First answer."},
				nil,
				logger.Nop(),
			)
			orch.HandleTurn(ctx, sess, chat.Config{}, "first question")
			Expect(sess.ModelContext()).To(HaveLen(2))

			failing := chat.NewOrchestrator(
				&stubGenerator{err: errors.New("rate limited")},
				nil,
				logger.Nop(),
			)
			reply := failing.HandleTurn(ctx, sess, chat.Config{}, "second question")

			Expect(reply).To(Equal("An error occurred: rate limited"))

			display := sess.Display()
			Expect(display[len(display)-1].Text).To(Equal(reply))
			Expect(sess.ModelContext()).To(HaveLen(2))
		})
	})

	It("truncates long queries in the debug log", func() {
		var buf bytes.Buffer
		log := logger.NewLoggerWithWriters(true, &buf)

		longQuery := strings.Repeat("migraine ", 12)
		orch := chat.NewOrchestrator(&stubGenerator{reply: "answer"}, nil, log)

		orch.HandleTurn(ctx, sess, chat.Config{}, longQuery)

		Expect(buf.String()).To(ContainSubstring(longQuery[:80] + "..."))
		Expect(buf.String()).NotTo(ContainSubstring(longQuery))
	})

	It("passes the prior exchanges as history on follow-up turns", func() {
		generator := &stubGenerator{reply: "answer"}
		orch := chat.NewOrchestrator(generator, nil, logger.Nop())

		orch.HandleTurn(ctx, sess, chat.Config{}, "first question")
		orch.HandleTurn(ctx, sess, chat.Config{}, "second question")

		Expect(generator.histories).To(HaveLen(2))
		Expect(generator.histories[0]).To(BeEmpty())
		Expect(generator.histories[1]).To(HaveLen(2))
		Expect(generator.histories[1][0].Text()).To(Equal("first question"))

		for _, turn := range generator.histories[1] {
			Expect(turn.Text()).NotTo(Equal(prompt.Greeting))
		}
	})
})
