package storage

import (
	"errors"

	"creator-station/internal/types"

	"gorm.io/gorm"
)

func SaveTask(task *types.PipelineTask) error {
	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing types.PipelineTask
	result := DB.Where("task_id = ?", task.TaskId).First(&existing)

	if result.Error == nil {
		task.Id = existing.Id
		return DB.Save(task).Error
	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DB.Create(task).Error
	}
	return result.Error
}

func GetTask(taskId string) (*types.PipelineTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var task types.PipelineTask
	if err := DB.Where("task_id = ?", taskId).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func GetTaskHistory(limit int) ([]types.PipelineTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var tasks []types.PipelineTask
	if err := DB.Order("create_time desc").Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func DeleteTask(taskId string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	return DB.Where("task_id = ?", taskId).Delete(&types.PipelineTask{}).Error
}

// MarkStaleTasks flips every running task to failed. Called on startup so a
// crash does not leave zombie "running" rows behind.
func MarkStaleTasks() (int64, error) {
	if DB == nil {
		return 0, errors.New("database not initialized")
	}
	result := DB.Model(&types.PipelineTask{}).
		Where("status = ?", types.PipelineTaskStatusRunning).
		Updates(map[string]interface{}{
			"status":      types.PipelineTaskStatusFailed,
			"fail_reason": "task interrupted by server restart",
			"status_msg":  "interrupted",
		})
	return result.RowsAffected, result.Error
}
