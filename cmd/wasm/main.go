//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"unitoken/config"
	"unitoken/internal/adapter/cache"
	"unitoken/internal/adapter/langdetect"
	"unitoken/internal/adapter/memstore"
	"unitoken/internal/usecase"
)

var (
	cfg      *config.Config
	store    *memstore.MemoryStore
	models   *cache.ModelCache
	uc       *usecase.TokenizeUseCase
	recorder *usecase.RunRecorder
	initErr  error
)

func init() {
	cfg = config.DefaultConfig()
	store = memstore.NewMemoryStore()
	recorder = usecase.NewRunRecorder(store)
	models = cache.NewModelCache(cache.BlankBuilder, nil)

	classifier, err := langdetect.NewLinguaClassifier(cfg.Detector, cfg.Tokenize.FallbackLanguage)
	if err != nil {
		initErr = err
		return
	}
	uc = usecase.NewTokenizeUseCase(classifier, usecase.NewModelResolver(models), cfg.Batch.ScoreThreshold, nil)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("unitokenTokenize", js.FuncOf(tokenize))
	js.Global().Set("unitokenBatch", js.FuncOf(batch))
	js.Global().Set("unitokenLanguages", js.FuncOf(languages))
	js.Global().Set("unitokenRun", js.FuncOf(getRun))
	js.Global().Set("unitokenStats", js.FuncOf(getStats))

	<-c
}

// tokenize(text, [sentences], [threshold])
func tokenize(this js.Value, args []js.Value) interface{} {
	if initErr != nil {
		return makeError("detector unavailable: " + initErr.Error())
	}
	if len(args) < 1 {
		return makeError("usage: unitokenTokenize(text, [sentences], [threshold])")
	}

	text := args[0].String()
	sentences := len(args) > 1 && args[1].Truthy()
	threshold := cfg.Tokenize.ScoreThreshold
	if len(args) > 2 && args[2].Type() == js.TypeNumber {
		threshold = args[2].Float()
	}

	if sentences {
		sents, lang, err := uc.SentTokenize(text, threshold, nil)
		if err != nil {
			return makeError(err.Error())
		}
		return makeResult(map[string]interface{}{
			"sentences": sents,
			"language":  lang,
		})
	}

	tokens, lang, err := uc.Tokenize(text, threshold, nil)
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(map[string]interface{}{
		"tokens":   tokens,
		"language": lang,
	})
}

// batch(textsJSON, [sentences], [save])
func batch(this js.Value, args []js.Value) interface{} {
	if initErr != nil {
		return makeError("detector unavailable: " + initErr.Error())
	}
	if len(args) < 1 {
		return makeError("usage: unitokenBatch(textsJSON, [sentences], [save])")
	}

	var texts []string
	if err := json.Unmarshal([]byte(args[0].String()), &texts); err != nil {
		return makeError("texts must be a JSON array of strings")
	}
	sentences := len(args) > 1 && args[1].Truthy()
	save := len(args) > 2 && args[2].Truthy()

	out := map[string]interface{}{}
	if sentences {
		results, err := uc.SentTokenizeBatch(texts, nil)
		if err != nil {
			return makeError(err.Error())
		}
		out["results"] = results
		if save {
			run, err := recorder.RecordSentences(nil, results)
			if err != nil {
				return makeError("saving run failed: " + err.Error())
			}
			out["runId"] = run.ID
		}
	} else {
		results, err := uc.TokenizeBatch(texts, nil)
		if err != nil {
			return makeError(err.Error())
		}
		out["results"] = results
		if save {
			run, err := recorder.RecordTokens(nil, results)
			if err != nil {
				return makeError("saving run failed: " + err.Error())
			}
			out["runId"] = run.ID
		}
	}
	return makeResult(out)
}

func languages(this js.Value, args []js.Value) interface{} {
	if initErr != nil {
		return makeError("detector unavailable: " + initErr.Error())
	}
	return makeResult(map[string]interface{}{
		"languages": uc.Allowed().Sorted(),
	})
}

func getRun(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: unitokenRun(id)")
	}
	run, err := store.GetRun(args[0].String())
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(map[string]interface{}{
		"run": run,
	})
}

func getStats(this js.Value, args []js.Value) interface{} {
	runs, _ := store.ListRuns()
	return makeResult(map[string]interface{}{
		"cachedModels": models.Languages(),
		"runs":         runs,
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
