package chat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mediassistco/mediassist/pkg/chat"
	"github.com/mediassistco/mediassist/pkg/prompt"
)

var _ = Describe("Session", func() {
	It("starts with the greeting-only display state", func() {
		sess := chat.NewSession()

		display := sess.Display()
		Expect(display).To(HaveLen(1))
		Expect(display[0].Role).To(Equal(chat.RoleAssistant))
		Expect(display[0].Text).To(Equal(prompt.Greeting))
		Expect(sess.ModelContext()).To(BeEmpty())
	})

	It("assigns each session a unique ID", func() {
		a := chat.NewSession()
		b := chat.NewSession()

		Expect(a.ID()).NotTo(BeEmpty())
		Expect(a.ID()).NotTo(Equal(b.ID()))
	})

	It("records a completed exchange in both histories", func() {
		sess := chat.NewSession()

		sess.AppendUser("What causes a migraine?")
		sess.CompleteExchange("What causes a migraine?", "Several factors can contribute.")

		display := sess.Display()
		Expect(display).To(HaveLen(3))
		Expect(display[1]).To(Equal(chat.Turn{Role: chat.RoleUser, Text: "What causes a migraine?"}))
		Expect(display[2]).To(Equal(chat.Turn{Role: chat.RoleAssistant, Text: "Several factors can contribute."}))

		modelContext := sess.ModelContext()
		Expect(modelContext).To(HaveLen(2))
		Expect(modelContext[0].Role).To(Equal(chat.ModelRoleUser))
		Expect(modelContext[0].Parts).To(Equal([]string{"What causes a migraine?"}))
		Expect(modelContext[1].Role).To(Equal(chat.ModelRoleModel))
		Expect(modelContext[1].Parts).To(Equal([]string{"Several factors can contribute."}))
	})

	It("keeps the model context at twice the number of completed exchanges", func() {
		sess := chat.NewSession()

		for i := 0; i < 3; i++ {
			sess.AppendUser("q")
			sess.CompleteExchange("q", "a")
		}

		Expect(sess.ModelContext()).To(HaveLen(6))
	})

	It("keeps assistant-only display turns out of the model context", func() {
		sess := chat.NewSession()

		sess.AppendUser("q")
		sess.AppendAssistant("An error occurred: boom")

		Expect(sess.Display()).To(HaveLen(3))
		Expect(sess.ModelContext()).To(BeEmpty())
	})

	It("never includes the greeting in the model context", func() {
		sess := chat.NewSession()

		sess.AppendUser("q")
		sess.CompleteExchange("q", "a")

		for _, turn := range sess.ModelContext() {
			Expect(turn.Text()).NotTo(Equal(prompt.Greeting))
		}
	})

	It("clears back to the greeting-only state", func() {
		sess := chat.NewSession()

		sess.AppendUser("q")
		sess.CompleteExchange("q", "a")
		sess.Clear()

		display := sess.Display()
		Expect(display).To(HaveLen(1))
		Expect(display[0].Text).To(Equal(prompt.Greeting))
		Expect(sess.ModelContext()).To(BeEmpty())
	})

	It("preserves settings across Clear", func() {
		sess := chat.NewSession()
		sess.SetConfig(chat.Config{SearchEnabled: true})

		sess.Clear()

		Expect(sess.Config().SearchEnabled).To(BeTrue())
	})
})

var _ = Describe("Registry", func() {
	It("creates and resolves sessions by ID", func() {
		registry := chat.NewRegistry()

		sess := registry.Create(chat.Config{SearchEnabled: true})

		got, ok := registry.Get(sess.ID())
		Expect(ok).To(BeTrue())
		Expect(got).To(BeIdenticalTo(sess))
		Expect(got.Config().SearchEnabled).To(BeTrue())
		Expect(registry.Len()).To(Equal(1))
	})

	It("returns false for unknown IDs", func() {
		registry := chat.NewRegistry()

		_, ok := registry.Get("nope")
		Expect(ok).To(BeFalse())
	})

	It("removes sessions", func() {
		registry := chat.NewRegistry()
		sess := registry.Create(chat.Config{})

		registry.Remove(sess.ID())

		_, ok := registry.Get(sess.ID())
		Expect(ok).To(BeFalse())
		Expect(registry.Len()).To(BeZero())
	})
})
