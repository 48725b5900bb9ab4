package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/translate"
)

type Translator struct {
	client openai.Client
	model  string
	logger *Logger.Logger
}

var _ translate.Translator = (*Translator)(nil)

func New(model string, logger *Logger.Logger, opts ...option.RequestOption) *Translator {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &Translator{
		client: openai.NewClient(opts...),
		model:  model,
		logger: logger,
	}
}

func (o *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(translate.Instruction(source, target)),
			openai.UserMessage(text),
		},
		Model:       o.model,
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", translate.ErrUnavailable, err)
	}
	if len(completion.Choices) == 0 {
		return "", translate.ErrEmptyTranslation
	}

	o.logger.Debugf("openai translation (%s): %s", completion.Model, completion.Choices[0].Message.Content)
	return translate.Clean(completion.Choices[0].Message.Content)
}
