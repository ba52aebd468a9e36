// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/mem"

	"pwd-analyzer/pkg/hibp"
	"pwd-analyzer/pkg/strength"
)

type passwordApi struct {
	analyzer *strength.Analyzer
	checker  hibp.Checker
}

// RegisterPasswordApi builds the analyzer and breach checker from config
// and mounts the handlers on the group. Strategy and corpora are fixed
// here, once, for the life of the process.
func RegisterPasswordApi(group *gin.RouterGroup, cfg Config) error {
	corpus, err := strength.LoadCorpus(strength.CorpusFiles{
		CommonPasswords: cfg.CommonPasswordsFile,
		DictionaryWords: cfg.DictionaryWordsFile,
	})
	if err != nil {
		return err
	}

	var opts []strength.Option
	if !cfg.BasicScoring {
		opts = append(opts, strength.WithBackend(strength.NewZxcvbnBackend()))
	}

	var checker hibp.Checker = hibp.NewClient(
		time.Duration(cfg.HibpTimeoutSeconds)*time.Second,
		cfg.HibpMaxRetries,
	)
	if cfg.CacheTTLSeconds > 0 {
		log.Info().Msgf("breach result cache enabled, TTL %ds", cfg.CacheTTLSeconds)
		cached, err := hibp.NewCachedChecker(checker, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		if err != nil {
			return err
		}
		checker = cached
	}

	p := &passwordApi{
		analyzer: strength.NewAnalyzer(corpus, opts...),
		checker:  checker,
	}

	group.POST("/analyze", p.analyze)
	group.POST("/breach", p.breach)
	group.POST("/generate", p.generate)

	return nil
}

// RegisterHealthApi mounts the liveness endpoint.
func RegisterHealthApi(router *gin.Engine) {
	router.GET("/health", health)
}

func (p *passwordApi) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := p.analyzer.Analyze(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toAnalyzeResponse(res))
}

func (p *passwordApi) breach(c *gin.Context) {
	var req breachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := p.checker.Check(c.Request.Context(), req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, breachResponse{
		Compromised:    res.Compromised,
		BreachCount:    res.Count,
		RiskLevel:      res.Risk.String(),
		Message:        res.Message,
		Recommendation: res.Recommendation,
		Unavailable:    res.Unavailable,
	})
}

func (p *passwordApi) generate(c *gin.Context) {
	req := generateRequest{Length: 16}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spec := strength.GenerateSpec{
		Length:  req.Length,
		Upper:   orTrue(req.IncludeUpper),
		Lower:   orTrue(req.IncludeLower),
		Digits:  orTrue(req.IncludeNumbers),
		Symbols: orTrue(req.IncludeSymbols),
	}

	generated, err := strength.Generate(spec)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Score the generated password for quality feedback. The password is
	// returned to the caller; it is never logged.
	analysis, err := p.analyzer.Analyze(generated.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, generateResponse{
		Password:      generated.Password,
		Length:        spec.Length,
		CharsetSize:   generated.CharsetSize,
		EntropyBits:   generated.EntropyBits,
		StrengthScore: analysis.Score,
		StrengthLevel: analysis.Level.String(),
	})
}

func health(c *gin.Context) {
	res := healthResponse{Status: "ok"}
	if memStat, err := mem.VirtualMemory(); err == nil {
		res.MemoryUsedPct = memStat.UsedPercent
		res.MemoryFreeMiB = memStat.Available / (1024 * 1024)
	}
	c.JSON(http.StatusOK, res)
}

func toAnalyzeResponse(res *strength.Result) analyzeResponse {
	issues := make([]string, 0, len(res.Issues))
	for _, issue := range res.Issues {
		issues = append(issues, issue.String())
	}

	out := analyzeResponse{
		Score:           res.Score,
		Strength:        res.Level.String(),
		EntropyBits:     res.EntropyBits,
		UniqueCharRatio: res.UniqueCharRatio,
		Length:          res.Length,
		CharacterTypes: characterTypes{
			Lowercase: res.Composition.Lower,
			Uppercase: res.Composition.Upper,
			Numbers:   res.Composition.Digit,
			Symbols:   res.Composition.Symbol,
		},
		Issues:      issues,
		Suggestions: res.Suggestions,
	}

	if res.Backend != nil {
		out.Guesses = res.Backend.Guesses
		out.CrackTimes = &crackTimes{
			OnlineThrottled:   res.Backend.CrackTimes.OnlineThrottled,
			OnlineUnthrottled: res.Backend.CrackTimes.OnlineUnthrottled,
			OfflineSlow:       res.Backend.CrackTimes.OfflineSlow,
			OfflineFast:       res.Backend.CrackTimes.OfflineFast,
		}
	} else {
		out.CrackTime = strength.EstimateCrackTime(res.EntropyBits)
	}

	return out
}

func orTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}
