package llm

import "context"

// CompletionFunc abstracts a text-completion provider: prompt in, raw text
// out. The analyzer is agnostic to which provider backs it; one concrete
// binding is chosen at startup from configuration.
type CompletionFunc func(ctx context.Context, prompt string) (string, error)
