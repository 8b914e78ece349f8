package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/interview-ace/ace/internal/ai/embeddings"
	"github.com/interview-ace/ace/internal/ai/llmparser"
	"github.com/interview-ace/ace/internal/ml/infer"
	"github.com/interview-ace/ace/pkg/authx"
	"github.com/interview-ace/ace/pkg/cachex"
	"github.com/interview-ace/ace/pkg/fsx"
	"github.com/interview-ace/ace/pkg/fsx/fsxlocal"
	"github.com/interview-ace/ace/pkg/fsx/fsxs3"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/interview-ace/ace/practice/feedback"
	"github.com/interview-ace/ace/practice/feedback/feedbackapi"
	"github.com/interview-ace/ace/practice/feedback/feedbackinfra"
	"github.com/interview-ace/ace/practice/feedback/feedbacksrv"
	"github.com/interview-ace/ace/practice/knowledge/knowledgeapi"
	"github.com/interview-ace/ace/practice/knowledge/knowledgeinfra"
	"github.com/interview-ace/ace/practice/knowledge/knowledgesrv"
	"github.com/interview-ace/ace/practice/question"
	"github.com/interview-ace/ace/practice/question/questionapi"
	"github.com/interview-ace/ace/practice/question/questioninfra"
	"github.com/interview-ace/ace/practice/question/questionsrv"
	"github.com/interview-ace/ace/practice/resume/resumeapi"
	"github.com/interview-ace/ace/practice/resume/resumeinfra"
	"github.com/interview-ace/ace/practice/resume/resumesrv"
	"github.com/interview-ace/ace/practice/resume/worker"
	"github.com/interview-ace/ace/practice/voice/voiceapi"
	"github.com/interview-ace/ace/practice/voice/voicesrv"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const parseQueueName = "ace:parse_jobs"

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	Auth       *authx.Service

	// Domain Services
	ResumeService    *resumesrv.Service
	QuestionService  *questionsrv.Service
	FeedbackService  *feedbacksrv.Service
	KnowledgeService *knowledgesrv.Service
	VoiceService     *voicesrv.Service

	// Background Processing
	ParseWorker *worker.ParseWorker

	// API Handlers
	ResumeHandlers    *resumeapi.ResumeHandlers
	QuestionHandlers  *questionapi.QuestionHandlers
	FeedbackHandlers  *feedbackapi.FeedbackHandlers
	KnowledgeHandlers *knowledgeapi.KnowledgeHandlers
	VoiceHandlers     *voiceapi.VoiceHandlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPass := os.Getenv("DB_PASS")
	dbName := envOr("DB_NAME", "ace")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. File Storage
	// S3 when a bucket is configured, local disk otherwise.
	if bucket := os.Getenv("AWS_BUCKET"); bucket != "" {
		cfg, err := config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(envOr("AWS_REGION", "us-east-1")))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(cfg), bucket, "uploads")
		logx.Infof("File storage: s3://%s/uploads", bucket)
	} else {
		storageDir := envOr("STORAGE_DIR", "./data/uploads")
		local, err := fsxlocal.NewLocalFileSystem(storageDir)
		if err != nil {
			logx.Fatalf("Failed to initialize local storage: %v", err)
		}
		c.FileSystem = local
		logx.Infof("File storage: %s", storageDir)
	}

	// 4. Auth
	authCfg := authx.DefaultConfig()
	authCfg.JWTSecret = os.Getenv("JWT_SECRET")
	if hashes := os.Getenv("API_KEY_HASHES"); hashes != "" {
		authCfg.APIKeyHashes = strings.Split(hashes, ",")
	}
	if authCfg.JWTSecret == "" && len(authCfg.APIKeyHashes) == 0 {
		logx.Warn("JWT_SECRET and API_KEY_HASHES are unset, authentication is disabled")
	}
	c.Auth = authx.NewService(authCfg)
}

func (c *Container) initServices() {
	apiKey := os.Getenv("OPENAI_API_KEY")
	chatModel := os.Getenv("OPENAI_CHAT_MODEL")

	// --- Resume Parsing ---
	resumeRepo := resumeinfra.NewPostgresRepository(c.DB)
	jobRepo := resumeinfra.NewPostgresJobRepository(c.DB)
	jobQueue := resumeinfra.NewRedisQueue(c.Redis, parseQueueName)

	var predictor resumesrv.Predictor
	if checkpoint := os.Getenv("MODEL_CHECKPOINT"); checkpoint != "" {
		loaded, err := infer.Load(checkpoint,
			infer.WithSkillThreshold(envFloat("SKILL_THRESHOLD", 0)),
			infer.WithBlendWeights(
				envFloat("CONFIDENCE_SKILL_WEIGHT", infer.DefaultSkillBlendWeight),
				envFloat("CONFIDENCE_SCORE_WEIGHT", infer.DefaultScoreBlendWeight),
			),
		)
		if err != nil {
			logx.Warnf("Failed to load model checkpoint %s: %v", checkpoint, err)
		} else {
			predictor = loaded
			logx.Infof("Local model loaded from %s", checkpoint)
		}
	}
	if predictor == nil {
		logx.Warn("No local model available, all resumes go to the LLM fallback")
	}

	var fallback resumesrv.FallbackParser
	if apiKey != "" {
		fallback = llmparser.NewResumeParser(apiKey, chatModel)
	} else {
		logx.Warn("OPENAI_API_KEY is unset, LLM features are disabled")
	}

	strategy := resumesrv.SelectStrategy(predictor, fallback, envFloat("CONFIDENCE_THRESHOLD", 0))
	c.ResumeService = resumesrv.NewService(resumeRepo, jobRepo, strategy, c.FileSystem, jobQueue)
	c.ParseWorker = worker.NewParseWorker(c.ResumeService, jobQueue, envInt("PARSE_WORKERS", 4))

	// --- Question Generation ---
	questionRepo := questioninfra.NewPostgresRepository(c.DB)

	var questionGen *questionsrv.LLMGenerator
	if apiKey != "" {
		questionGen = questionsrv.NewLLMGenerator(apiKey, chatModel)
	}

	var questionCache cachex.Cache
	if c.Redis.Ping(context.Background()).Err() == nil {
		questionCache = cachex.NewRedis(c.Redis, "ace")
	} else {
		questionCache = cachex.NewMemory(1024)
	}
	c.QuestionService = questionsrv.NewService(questionRepo, generatorOrNil(questionGen), questionCache, 0)

	// --- Answer Feedback ---
	feedbackRepo := feedbackinfra.NewPostgresRepository(c.DB)

	var evaluator *feedbacksrv.LLMEvaluator
	if apiKey != "" {
		evaluator = feedbacksrv.NewLLMEvaluator(apiKey, chatModel)
	}
	c.FeedbackService = feedbacksrv.NewService(feedbackRepo, evaluatorOrNil(evaluator))

	// --- Knowledge Base ---
	knowledgeRepo := knowledgeinfra.NewPostgresRepository(c.DB)

	var embedder embeddings.Embedder
	if apiKey != "" {
		embedder = embeddings.NewGenerator(apiKey)
	} else {
		embedder = embeddings.NewLocalHash()
	}
	c.KnowledgeService = knowledgesrv.NewService(knowledgeRepo, embedder)

	// --- Voice Transcription ---
	transcriber := voicesrv.NewOpenAITranscriber(apiKey, os.Getenv("OPENAI_AUDIO_MODEL"))
	c.VoiceService = voicesrv.NewService(transcriber, voicesrv.DetectFFmpeg())

	// --- Handlers ---
	c.ResumeHandlers = resumeapi.NewResumeHandlers(c.ResumeService, c.FileSystem)
	c.QuestionHandlers = questionapi.NewQuestionHandlers(c.QuestionService)
	c.FeedbackHandlers = feedbackapi.NewFeedbackHandlers(c.FeedbackService)
	c.KnowledgeHandlers = knowledgeapi.NewKnowledgeHandlers(c.KnowledgeService)
	c.VoiceHandlers = voiceapi.NewVoiceHandlers(c.VoiceService)
}

// generatorOrNil avoids storing a typed nil behind the interface.
func generatorOrNil(g *questionsrv.LLMGenerator) question.Generator {
	if g == nil {
		return nil
	}
	return g
}

func evaluatorOrNil(e *feedbacksrv.LLMEvaluator) feedback.Evaluator {
	if e == nil {
		return nil
	}
	return e
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		logx.Warnf("Invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
		logx.Warnf("Invalid %s=%q, using default", key, v)
	}
	return fallback
}
