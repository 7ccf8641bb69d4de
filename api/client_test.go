package api

import (
	"context"
	"net/http/httptest"

	"github.com/gofiber/adaptor/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mediassistco/mediassist/pkg/chat"
	"github.com/mediassistco/mediassist/pkg/prompt"
	"github.com/mediassistco/mediassist/pkg/search"
)

// newTestClient serves a real Server over HTTP and returns a Client pointed
// at it.
func newTestClient(generator chat.Generator, searcher chat.Searcher, defaultSearch bool) *Client {
	server := newTestServer(generator, searcher, defaultSearch)
	ts := httptest.NewServer(adaptor.FiberApp(server.app))
	DeferCleanup(ts.Close)
	return NewClient(ts.URL)
}

var _ = Describe("Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("trims a trailing slash from the target", func() {
		client := NewClient("http://localhost:8080/")
		Expect(client.Target()).To(Equal("http://localhost:8080"))
	})

	It("pings the server", func() {
		client := newTestClient(&stubGenerator{reply: "ok"}, nil, false)
		Expect(client.Ping(ctx)).To(Succeed())
	})

	It("creates a session seeded with the greeting", func() {
		client := newTestClient(&stubGenerator{reply: "ok"}, nil, true)

		sess, err := client.CreateSession(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(sess.SessionID).NotTo(BeEmpty())
		Expect(sess.SearchEnabled).To(BeTrue())
		Expect(sess.Messages).To(HaveLen(1))
		Expect(sess.Messages[0].Text).To(Equal(prompt.Greeting))
	})

	It("runs a chat turn", func() {
		generator := &stubGenerator{reply: "Common causes include stress."}
		client := newTestClient(generator, nil, false)

		sess, err := client.CreateSession(ctx)
		Expect(err).NotTo(HaveOccurred())

		resp, err := client.Chat(ctx, sess.SessionID, "What causes a migraine?")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Reply).To(Equal("Common causes include stress."))
		Expect(resp.Messages).To(HaveLen(3))
		Expect(resp.Messages[2].Text).To(Equal(resp.Reply))
	})

	It("augments the prompt when search is on for the session", func() {
		generator := &stubGenerator{reply: "According to the Mayo Clinic..."}
		searcher := &stubSearcher{result: search.Result{
			Organic: []search.OrganicEntry{
				{Title: "Migraine - Mayo Clinic", Link: "https://mayoclinic.org", Snippet: "Overview."},
			},
		}}
		client := newTestClient(generator, searcher, true)

		sess, err := client.CreateSession(ctx)
		Expect(err).NotTo(HaveOccurred())

		_, err = client.Chat(ctx, sess.SessionID, "What causes a migraine?")
		Expect(err).NotTo(HaveOccurred())
		Expect(searcher.calls).To(Equal(1))
		Expect(generator.prompts[0]).To(ContainSubstring("Medical Search Results"))
	})

	It("surfaces server errors with the status and message", func() {
		client := newTestClient(&stubGenerator{reply: "ok"}, nil, false)

		_, err := client.Chat(ctx, "no-such-session", "hello")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("404"))
		Expect(err.Error()).To(ContainSubstring("session not found"))
	})

	It("rejects a blank message through the server validation", func() {
		client := newTestClient(&stubGenerator{reply: "ok"}, nil, false)

		sess, err := client.CreateSession(ctx)
		Expect(err).NotTo(HaveOccurred())

		_, err = client.Chat(ctx, sess.SessionID, "   ")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("message is required"))
	})

	It("toggles search mode", func() {
		client := newTestClient(&stubGenerator{reply: "ok"}, &stubSearcher{}, false)

		sess, err := client.CreateSession(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(sess.SearchEnabled).To(BeFalse())

		updated, err := client.SetSearchMode(ctx, sess.SessionID, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.SearchEnabled).To(BeTrue())
	})

	It("clears a session back to the greeting", func() {
		client := newTestClient(&stubGenerator{reply: "answer"}, nil, false)

		sess, err := client.CreateSession(ctx)
		Expect(err).NotTo(HaveOccurred())

		_, err = client.Chat(ctx, sess.SessionID, "first question")
		Expect(err).NotTo(HaveOccurred())

		cleared, err := client.ClearHistory(ctx, sess.SessionID)
		Expect(err).NotTo(HaveOccurred())
		Expect(cleared.Messages).To(HaveLen(1))
		Expect(cleared.Messages[0].Text).To(Equal(prompt.Greeting))

		history, err := client.History(ctx, sess.SessionID)
		Expect(err).NotTo(HaveOccurred())
		Expect(history.Messages).To(HaveLen(1))
	})

	It("reports unreachable servers", func() {
		ts := httptest.NewServer(nil)
		ts.Close()

		client := NewClient(ts.URL)
		Expect(client.Ping(ctx)).To(MatchError(ContainSubstring("failed to connect to MediAssist API")))
	})
})
