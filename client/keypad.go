package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zllovesuki/OverlayManager/overlay"
	"github.com/zllovesuki/OverlayManager/rpc/protocol"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	title          = "OverlayManager Remote"
	refreshEvery   = time.Millisecond * 500
	requestTimeout = time.Second * 2
)

// Keypad is a terminal remote control for a running manager
type Keypad struct {
	address string
	version string
	client  *Client

	ctx      context.Context
	cancelFn context.CancelFunc

	app    *tview.Application
	layers *tview.Pages

	connectModal *tview.Modal

	confirmationModal *tview.Modal
	confirmYes        func()
	confirmNo         string

	frame     *tview.Frame
	container *tview.Flex
	leftCol   *tview.Flex
	rightCol  *tview.Flex

	keyList  *tview.List
	keyItems []listItem

	stateView  *tview.TextView
	infoView   *tview.TextView
	bannerEdit *tview.Form
}

type listItem struct {
	Main      string
	Secondary string
	Shortcut  rune
	Callback  func()
}

// keyShortcuts maps remote key names to their list shortcut
var keyShortcuts = []struct {
	name      string
	secondary string
	shortcut  rune
}{
	{"1", "Digit", '1'},
	{"2", "Digit", '2'},
	{"3", "Digit", '3'},
	{"4", "Digit", '4'},
	{"5", "Digit", '5'},
	{"6", "Digit", '6'},
	{"7", "Digit", '7'},
	{"8", "Digit", '8'},
	{"9", "Digit", '9'},
	{"0", "Digit", '0'},
	{"ch+", "Next channel", 'u'},
	{"ch-", "Previous channel", 'd'},
	{"vol+", "Volume up", '+'},
	{"vol-", "Volume down", '-'},
	{"mute", "Toggle mute", 'm'},
	{"info", "Show channel info", 'i'},
	{"exit", "Exit key", 'x'},
}

// NewKeypad returns a Keypad that connects to the manager at address
func NewKeypad(address, version string) *Keypad {
	return &Keypad{
		address:           address,
		version:           version,
		app:               tview.NewApplication(),
		layers:            tview.NewPages(),
		connectModal:      tview.NewModal(),
		confirmationModal: tview.NewModal(),
		container:         tview.NewFlex(),
		leftCol:           tview.NewFlex(),
		rightCol:          tview.NewFlex(),
		keyList:           tview.NewList(),
		stateView:         tview.NewTextView(),
		infoView:          tview.NewTextView(),
		bannerEdit:        tview.NewForm(),
	}
}

func (k *Keypad) connect(haltCtx context.Context) error {
	c, err := Dial(haltCtx, k.address, k.version)
	if err != nil {
		return err
	}
	k.client = c
	k.updateInfoView()
	return nil
}

func (k *Keypad) setup() {
	k.layers.
		AddPage("connect", k.connectModal, true, true).
		AddPage("container", k.container, true, false).
		AddPage("confirmation", k.confirmationModal, true, false)

	k.setupKeyList()
	k.setupModals()
	k.setupForms()
	k.setupStyles()
	k.keyBindings()

	k.leftCol.SetDirection(tview.FlexRow).
		AddItem(k.keyList, 0, 8, true).
		AddItem(k.infoView, 0, 2, false)

	k.rightCol.SetDirection(tview.FlexRow).
		AddItem(k.stateView, 0, 5, false).
		AddItem(k.bannerEdit, 0, 5, false)

	k.container.
		AddItem(k.leftCol, 0, 4, true).
		AddItem(k.rightCol, 0, 6, false)

	k.frame = tview.NewFrame(k.layers)

	k.clearMessage()

	k.app.SetRoot(k.frame, true)
}

func (k *Keypad) setupModals() {
	k.connectModal.SetText(fmt.Sprintf("Connect to OverlayManager at %s", k.address)).
		AddButtons([]string{"Connect", "Quit"}).
		SetBackgroundColor(tcell.Color104).
		SetDoneFunc(func(index int, label string) {
			if label == "Connect" {
				err := k.connect(k.ctx)
				if err != nil {
					k.showMessage(err.Error(), tcell.ColorRed)
					return
				}
				k.layers.SwitchToPage("container")
				k.refreshState()
			} else {
				k.cancelFn()
			}
		})

	k.confirmationModal.SetText("Are you sure?").
		AddButtons([]string{"Yes", "No"}).
		SetBackgroundColor(tcell.Color104).
		SetDoneFunc(func(index int, label string) {
			switch label {
			case "Yes":
				k.confirmYes()
			case "No":
				k.layers.SwitchToPage(k.confirmNo)
			}
		})
}

func (k *Keypad) setupKeyList() {
	k.keyItems = make([]listItem, 0, len(keyShortcuts)+1)
	for _, s := range keyShortcuts {
		name := s.name
		k.keyItems = append(k.keyItems, listItem{
			Main:      strings.ToUpper(name),
			Secondary: s.secondary,
			Shortcut:  s.shortcut,
			Callback: func() {
				k.press(name)
			},
		})
	}
	k.keyItems = append(k.keyItems, listItem{
		Main:      "Quit",
		Secondary: "Exit the remote",
		Shortcut:  'q',
		Callback: func() {
			k.confirmNo = "container"
			k.confirmYes = k.cancelFn
			k.layers.SwitchToPage("confirmation")
		},
	})
	for index := range k.keyItems {
		item := k.keyItems[index]
		k.keyList.AddItem(item.Main, item.Secondary, item.Shortcut, item.Callback)
	}
}

func (k *Keypad) setupForms() {
	number := func(text string, _ rune) bool {
		if text == "" {
			return true
		}
		_, err := strconv.ParseUint(text, 10, 16)
		return err == nil
	}
	k.bannerEdit.
		AddInputField("Channel ", "", 6, number, nil).
		AddInputField("Subtitles ", "", 24, nil, nil).
		AddInputField("Volume % ", "", 4, number, nil).
		AddButton("Number", func() {
			n, ok := k.channelField()
			if ok {
				k.request("channel number", func(ctx context.Context) error {
					return k.client.ShowChannelNumber(ctx, n)
				})
			}
		}).
		AddButton("Info", func() {
			n, ok := k.channelField()
			if ok {
				subs := strings.Fields(strings.ReplaceAll(k.fieldText(1), ",", " "))
				k.request("channel info", func(ctx context.Context) error {
					return k.client.ShowChannelInfo(ctx, n, subs)
				})
			}
		}).
		AddButton("Unavailable", func() {
			n, ok := k.channelField()
			if ok {
				k.request("channel unavailable", func(ctx context.Context) error {
					return k.client.ShowChannelUnavailable(ctx, n)
				})
			}
		}).
		AddButton("Volume", func() {
			p, err := strconv.ParseUint(k.fieldText(2), 10, 16)
			if err != nil {
				k.showMessage("Volume must be a percentage", tcell.ColorRed)
				return
			}
			k.request("volume", func(ctx context.Context) error {
				return k.client.ShowVolumeLevel(ctx, float64(p)/100)
			})
		}).
		SetButtonBackgroundColor(tcell.Color104).
		SetFieldBackgroundColor(tcell.Color104)
}

func (k *Keypad) fieldText(index int) string {
	return k.bannerEdit.GetFormItem(index).(*tview.InputField).GetText()
}

func (k *Keypad) channelField() (uint16, bool) {
	n, err := strconv.ParseUint(k.fieldText(0), 10, 16)
	if err != nil {
		k.showMessage("Channel must be a number", tcell.ColorRed)
		return 0, false
	}
	return uint16(n), true
}

func (k *Keypad) keyBindings() {
	// Right key on the key list moves to the banner form
	k.keyList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRight || event.Key() == tcell.KeyTab {
			k.app.SetFocus(k.bannerEdit)
			return nil
		}
		return event
	})

	// Esc on the form goes back to the key list
	k.bannerEdit.SetCancelFunc(func() {
		k.clearMessage()
		k.app.SetFocus(k.keyList)
	})
}

func (k *Keypad) setupStyles() {
	k.keyList.Box.SetBorder(true).SetTitle(" Remote ")
	k.keyList.SetSecondaryTextColor(tcell.ColorGray)
	k.stateView.Box.SetBorder(true).SetTitle(" On Screen ")
	k.bannerEdit.Box.SetBorder(true).SetTitle(" Show Banner ")
	k.infoView.Box.SetBorder(true).SetTitle(" Information ")
}

func (k *Keypad) updateInfoView() {
	var txt string
	txt = fmt.Sprintf("%v\nManager version: %s", txt, k.client.ServerVersion())
	txt = fmt.Sprintf("%v\nClient version: %s", txt, k.version)
	txt = fmt.Sprintf("%v\nManager: %s", txt, k.address)
	k.infoView.SetText(txt[1:])
}

func (k *Keypad) press(name string) {
	k.request(name, func(ctx context.Context) error {
		return k.client.PressKey(ctx, name)
	})
}

func (k *Keypad) request(what string, fn func(ctx context.Context) error) {
	if k.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(k.ctx, requestTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		k.showMessage(fmt.Sprintf("%s: %s", what, err), tcell.ColorRed)
		return
	}
	k.refreshState()
}

func (k *Keypad) refreshState() {
	if k.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(k.ctx, requestTimeout)
	defer cancel()
	st, err := k.client.State(ctx)
	if err != nil {
		k.stateView.SetText(err.Error())
		return
	}
	k.stateView.SetText(FormatState(st))
}

func (k *Keypad) clearMessage() {
	k.frame.Clear().AddText(title, true, tview.AlignCenter, tcell.ColorWhite).AddText("", false, tview.AlignLeft, tcell.ColorWhite)
}

func (k *Keypad) showMessage(msg string, color tcell.Color) {
	k.frame.Clear().AddText(title, true, tview.AlignCenter, tcell.ColorWhite).AddText(msg, false, tview.AlignLeft, color)
	go func() {
		time.Sleep(time.Millisecond * 2500)
		k.app.QueueUpdateDraw(k.clearMessage)
	}()
}

// FormatState renders a State for people
func FormatState(st protocol.State) string {
	var b strings.Builder

	if k, ok := overlay.ParseKind(st.Active); ok && k == overlay.KindNone {
		b.WriteString("Nothing on screen\n")
	} else {
		fmt.Fprintf(&b, "Showing: %s %s\n", st.Active, strings.Join(st.Texts, " / "))
	}
	if len(st.Armed) > 0 {
		fmt.Fprintf(&b, "Dismissing: %s\n", strings.Join(st.Armed, ", "))
	}
	flags := make([]string, 0, 2)
	if st.ChannelInfoShowing {
		flags = append(flags, "channel info")
	}
	if st.VolumeShowing {
		flags = append(flags, "volume")
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, "Latched: %s\n", strings.Join(flags, ", "))
	}

	b.WriteString("\n")
	if st.ChannelName != "" {
		fmt.Fprintf(&b, "Channel: %d (%s)\n", st.Channel, st.ChannelName)
	} else {
		fmt.Fprintf(&b, "Channel: %d\n", st.Channel)
	}
	if st.Subtitles != "" {
		fmt.Fprintf(&b, "Subtitles: %s\n", st.Subtitles)
	} else {
		b.WriteString("Subtitles: none\n")
	}
	volume := overlay.FormatPercent(st.Volume)
	if st.Muted {
		volume += " (muted)"
	}
	fmt.Fprintf(&b, "Volume: %s\n", volume)

	return b.String()
}

func (k *Keypad) Serve(haltCtx context.Context) error {

	k.setup()

	k.ctx, k.cancelFn = context.WithCancel(haltCtx)
	defer k.cancelFn()
	defer func() {
		if k.client != nil {
			k.client.Close()
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- k.app.Run()
		k.cancelFn()
	}()

	ticker := time.NewTicker(refreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-k.ctx.Done():
			k.app.Stop()
			select {
			case err := <-errCh:
				return err
			default:
				return nil
			}
		case <-ticker.C:
			k.app.QueueUpdateDraw(k.refreshState)
		}
	}
}
