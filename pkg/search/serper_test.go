package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mediassistco/mediassist/pkg/search"
)

var _ = Describe("Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("appends the medical qualifier and bounds the result count", func() {
		var gotBody map[string]any
		var gotKey string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("X-API-KEY")
			Expect(json.NewDecoder(r.Body).Decode(&gotBody)).To(Succeed())

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"organic":[]}`))
		}))
		defer server.Close()

		client := search.NewClient("test-key", search.WithEndpoint(server.URL))
		result := client.Search(ctx, "what causes a migraine?")

		Expect(result.Failed()).To(BeFalse())
		Expect(gotKey).To(Equal("test-key"))
		Expect(gotBody["q"]).To(Equal("what causes a migraine? medical information"))
		Expect(gotBody["num"]).To(BeEquivalentTo(5))
	})

	It("parses organic entries, answer box, and knowledge graph", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"organic": [
					{"title": "Migraine - Mayo Clinic", "link": "https://mayoclinic.org", "snippet": "Overview."}
				],
				"answerBox": {"title": "Migraine", "answer": "A headache disorder.", "snippet": "..."},
				"knowledgeGraph": {"title": "Migraine", "description": "Neurological condition."}
			}`))
		}))
		defer server.Close()

		client := search.NewClient("test-key", search.WithEndpoint(server.URL))
		result := client.Search(ctx, "migraine")

		Expect(result.Failed()).To(BeFalse())
		Expect(result.Organic).To(HaveLen(1))
		Expect(result.Organic[0].Title).To(Equal("Migraine - Mayo Clinic"))
		Expect(result.AnswerBox).NotTo(BeNil())
		Expect(result.AnswerBox.Answer).To(Equal("A headache disorder."))
		Expect(result.KnowledgeGraph).NotTo(BeNil())
		Expect(result.KnowledgeGraph.Description).To(Equal("Neurological condition."))
	})

	It("folds a provider error status into the result", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := search.NewClient("test-key", search.WithEndpoint(server.URL))
		result := client.Search(ctx, "migraine")

		Expect(result.Failed()).To(BeTrue())
		Expect(result.Error).To(ContainSubstring("status 429"))
		Expect(result.Organic).To(BeEmpty())
	})

	It("folds a transport failure into the result", func() {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		endpoint := server.URL
		server.Close()

		client := search.NewClient("test-key", search.WithEndpoint(endpoint))
		result := client.Search(ctx, "migraine")

		Expect(result.Failed()).To(BeTrue())
		Expect(result.Error).To(ContainSubstring("sending search request"))
		Expect(result.Organic).To(BeEmpty())
	})

	It("honors a custom result bound", func() {
		var gotBody map[string]any

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(json.NewDecoder(r.Body).Decode(&gotBody)).To(Succeed())
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := search.NewClient("test-key",
			search.WithEndpoint(server.URL),
			search.WithMaxResults(3),
		)
		client.Search(ctx, "migraine")

		Expect(gotBody["num"]).To(BeEquivalentTo(3))
	})
})
