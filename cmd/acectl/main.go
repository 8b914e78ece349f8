// Command acectl drives the offline ML pipeline: building training shards
// from raw resume exports, training the local parsing model and running
// ad-hoc predictions against a checkpoint.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/interview-ace/ace/internal/ml/dataset"
	"github.com/interview-ace/ace/internal/ml/infer"
	"github.com/interview-ace/ace/internal/ml/train"
	"github.com/interview-ace/ace/internal/ml/vocab"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/spf13/pflag"
)

func main() {
	logx.SetLevel(logx.LevelInfo)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "dataset":
		err = runDataset(os.Args[2:])
	case "train":
		err = runTrain(os.Args[2:])
	case "predict":
		err = runPredict(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		logx.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: acectl <command> [flags]

Commands:
  dataset   build train/validation shards from an NDJSON resume export
  train     train the parsing model on prepared shards
  predict   run one prediction against a saved checkpoint
`)
}

func runDataset(args []string) error {
	flags := pflag.NewFlagSet("dataset", pflag.ExitOnError)
	source := flags.String("source", "", "NDJSON resume export to read")
	trainOut := flags.String("train-out", "train.ndjson", "output path for the training shard")
	valOut := flags.String("val-out", "val.ndjson", "output path for the validation shard")
	valRatio := flags.Float64("val-ratio", dataset.DefaultValRatio, "fraction of examples held out for validation")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *source == "" {
		return fmt.Errorf("--source is required")
	}

	trainCount, valCount, err := dataset.BuildFiles(*source, *trainOut, *valOut, *valRatio)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d training examples to %s, %d validation examples to %s\n",
		trainCount, *trainOut, valCount, *valOut)
	return nil
}

func runTrain(args []string) error {
	flags := pflag.NewFlagSet("train", pflag.ExitOnError)
	trainShard := flags.String("train-shard", "train.ndjson", "training shard path")
	valShard := flags.String("val-shard", "val.ndjson", "validation shard path")
	checkpoint := flags.String("checkpoint", "model.ckpt.json", "checkpoint output path")
	cfg := train.DefaultConfig("")
	flags.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "training epochs")
	flags.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "training batch size")
	flags.Float64Var(&cfg.LearningRate, "lr", cfg.LearningRate, "Adam learning rate")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed for init and shuffling")
	if err := flags.Parse(args); err != nil {
		return err
	}
	cfg.CheckpointPath = *checkpoint

	trainSet, err := dataset.ReadShardFile(*trainShard)
	if err != nil {
		return err
	}
	valSet, err := dataset.ReadShardFile(*valShard)
	if err != nil {
		return err
	}

	tokens := vocab.BuildTokens(trainSet, vocab.DefaultMaxTokens)
	skills := vocab.BuildSkills(trainSet, vocab.DefaultSkillMinCount, vocab.DefaultMaxSkills)
	logx.Infof("vocabularies: %d tokens, %d skills", tokens.Size(), skills.Size())

	result, err := train.Run(cfg, trainSet, valSet, tokens, skills)
	if err != nil {
		return err
	}

	fmt.Printf("best epoch %d, validation loss %.4f, score MAE %.2f\n",
		result.BestEpoch, result.BestValLoss, result.ScoreMAE)
	if !result.Saved {
		fmt.Println("no checkpoint saved: validation loss never improved")
	}
	return nil
}

func runPredict(args []string) error {
	flags := pflag.NewFlagSet("predict", pflag.ExitOnError)
	checkpoint := flags.String("checkpoint", "model.ckpt.json", "checkpoint to load")
	file := flags.String("file", "", "resume text file to score (default: stdin)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	predictor, err := infer.Load(*checkpoint)
	if err != nil {
		return err
	}

	var text []byte
	if *file != "" {
		text, err = os.ReadFile(*file)
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	prediction := predictor.Predict(string(text))
	out, err := json.MarshalIndent(prediction, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
